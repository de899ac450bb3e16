package types

import (
	"time"

	"github.com/google/uuid"
)

// ContentTypes lists the deliverables a brief can request.
var ContentTypes = []string{
	"blog_post",
	"landing_page",
	"email_sequence",
	"social_media",
	"case_study",
	"whitepaper",
	"product_description",
	"other",
}

// Brief is a structured content request submitted through the portal wizard
type Brief struct {
	ProjectTitle   string   `json:"projectTitle" validate:"required,max=200"`
	ContentType    string   `json:"contentType" validate:"required,oneof=blog_post landing_page email_sequence social_media case_study whitepaper product_description other"`
	TargetAudience string   `json:"targetAudience" validate:"required"`
	Goals          string   `json:"goals" validate:"required"`
	Tone           string   `json:"tone,omitempty"`
	Keywords       []string `json:"keywords,omitempty" validate:"omitempty,max=20,dive,required"`
	WordCount      int      `json:"wordCount,omitempty" validate:"omitempty,min=100,max=20000"`
	Deadline       string   `json:"deadline,omitempty" validate:"omitempty,datetime=2006-01-02"`
	References     []string `json:"references,omitempty" validate:"omitempty,dive,url"`
	Notes          string   `json:"notes,omitempty" validate:"max=5000"`
	ContactEmail   string   `json:"contactEmail" validate:"required,email"`
}

// BriefReceipt acknowledges a submitted brief
type BriefReceipt struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ContactRequest is the marketing site's contact form
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Company string `json:"company,omitempty" validate:"max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}
