package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jonathan/copydesk/internal/brief"
	"github.com/jonathan/copydesk/internal/observability"
	"github.com/jonathan/copydesk/internal/tui"
	"github.com/jonathan/copydesk/internal/voice"
)

var wizardServer string

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Run the brand voice wizard in the terminal",
	RunE:  runVoiceWizard,
}

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Fill in a content brief in the terminal",
	Long: `Walks through the brief wizard. The draft is saved after every change and
resumed the next time the wizard starts.`,
	RunE: runBriefWizard,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the saved brand voice profile",
	RunE:  runShowProfile,
}

var profileClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved brand voice profile",
	RunE:  runClearProfile,
}

func init() {
	voiceCmd.Flags().StringVar(&wizardServer, "server", "", "Base URL of a copydesk server")
	briefCmd.Flags().StringVar(&wizardServer, "server", "", "Base URL of a copydesk server")

	profileCmd.AddCommand(profileClearCmd)
	rootCmd.AddCommand(voiceCmd, briefCmd, profileCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func wizardSettings() (*settings, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}
	if wizardServer != "" {
		s.ServerURL = wizardServer
	}
	return s, nil
}

func runVoiceWizard(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := wizardSettings()
	if err != nil {
		return err
	}

	analyzer, closeFn, err := s.analyzer(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	store, err := s.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	model := tui.NewVoiceModel(ctx, analyzer, voice.NewProfileStore(store), nil)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("voice wizard: %w", err)
	}

	if saved := model.Saved(); saved != nil && s.Verbose {
		observability.NewPrinter(os.Stdout).PrintAnalysis(&saved.Result)
	}
	return nil
}

func runBriefWizard(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := wizardSettings()
	if err != nil {
		return err
	}

	store, err := s.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var submitter brief.Submitter = brief.NewLogSubmitter()
	if s.ServerURL != "" {
		submitter = brief.NewHTTPSubmitter(s.ServerURL, &http.Client{Timeout: 30 * time.Second})
	}

	wizard, err := brief.NewWizard(ctx, brief.NewDraftStore(store), submitter)
	if err != nil {
		return err
	}

	model := tui.NewBriefModel(ctx, wizard, nil)
	if _, err := tea.NewProgram(model, tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("brief wizard: %w", err)
	}

	if receipt := wizard.Receipt(); receipt != nil {
		d := wizard.Draft()
		observability.NewPrinter(os.Stdout).PrintBriefReceipt(&d.Brief, receipt)
	}
	return nil
}

func runShowProfile(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	s, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := s.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := voice.NewProfileStore(store).Load(ctx)
	if err != nil {
		return err
	}
	if saved == nil {
		_, _ = fmt.Fprintln(os.Stdout, "No voice profile saved yet. Run `copydesk voice` to create one.")
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintAnalysis(&saved.Result)
	if s.Verbose {
		printer.PrintSamples(saved.Samples)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Saved %s\n", saved.SavedAt.Local().Format(time.RFC1123))
	return nil
}

func runClearProfile(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := s.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := voice.NewProfileStore(store).Clear(commandContext(cmd)); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(os.Stdout, "Voice profile cleared")
	return nil
}
