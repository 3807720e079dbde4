// Copyright (c) 2025 Vida com Deus
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"

	"vidadeus/cli/internal/api"
	"vidadeus/cli/internal/session"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	patientName      string
	patientEmail     string
	patientComplaint string
	patientGoal      string
	patientLimit     int
	patientStatus    string

	sessionDate    string
	sessionSummary string
	sessionMood    string
	sessionTopics  []string
)

// therapistCmd groups the therapist dashboard subcommands. The backend
// enforces the therapist role; other accounts get a 403.
var therapistCmd = &cobra.Command{
	Use:   "therapist",
	Short: "Therapist dashboard",
	Long: `The therapist command exposes the therapist dashboard: an overview of
your patients, patient intake and clinical configuration, message quota
management and session records.

These commands require an account with the therapist role.`,
}

var therapistOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show the dashboard overview",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}

		ov, err := client.TherapistOverview(ctx)
		if err != nil {
			return therapistError(mgr, client, err)
		}

		rows := pterm.TableData{
			{"Total patients", fmt.Sprintf("%d", ov.TotalPatients)},
			{"Active", fmt.Sprintf("%d", ov.ActivePatients)},
			{"Paused", fmt.Sprintf("%d", ov.PausedPatients)},
			{"Discharged", fmt.Sprintf("%d", ov.DischargedPatients)},
		}
		if err := pterm.DefaultTable.WithData(rows).Render(); err != nil {
			return fmt.Errorf("render overview table: %w", err)
		}

		if len(ov.NearLimitPatients) > 0 {
			pterm.Println()
			pterm.Println(pterm.Yellow("⚠️  Patients near their message limit:"))
			for _, p := range ov.NearLimitPatients {
				pterm.Printf("   %s — %d/%d messages\n", p.Name, p.MessagesUsed, p.MessagesLimit)
			}
		}
		if len(ov.RecentActivity) > 0 {
			pterm.Println()
			pterm.DefaultSection.Println("Recent Activity")
			for _, a := range ov.RecentActivity {
				pterm.Printf("  %s %s — %s\n", pterm.Gray(a.Timestamp), a.PatientName, a.Action)
			}
		}
		return nil
	},
}

var therapistPatientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "List your patients",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}

		list, err := client.Patients(ctx)
		if err != nil {
			return therapistError(mgr, client, err)
		}
		if len(list.Patients) == 0 {
			pterm.Println("No patients yet. Register one with 'vida therapist intake'.")
			return nil
		}

		rows := pterm.TableData{{"ID", "Name", "Email", "Status", "Messages"}}
		for _, p := range list.Patients {
			rows = append(rows, []string{
				p.ID, p.Name, p.Email, patientStatusBadge(p.Status),
				fmt.Sprintf("%d/%d", p.MessagesUsed, p.MessagesLimit),
			})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return fmt.Errorf("render patients table: %w", err)
		}
		pterm.Printf("\n%d patient(s)\n", list.Total)
		return nil
	},
}

var therapistIntakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "Register a new patient",
	Long: `The intake subcommand registers a new patient. Name and email are
required; the clinical configuration can be filled in now with flags or
updated later with 'vida therapist patient <id> --set ...'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}

		name := patientName
		if name == "" {
			name, err = promptLine("Patient name: ")
			if err != nil {
				return err
			}
		}
		email := patientEmail
		if email == "" {
			email, err = promptLine("Patient email: ")
			if err != nil {
				return err
			}
		}
		if name == "" || email == "" {
			return fmt.Errorf("patient name and email are required")
		}

		form := api.PatientIntakeForm{Name: name, Email: email}
		if patientComplaint != "" {
			form.ChiefComplaint = &patientComplaint
		}
		if patientGoal != "" {
			form.TherapyGoal = &patientGoal
		}
		if cmd.Flags().Changed("limit") {
			form.MessagesLimit = &patientLimit
		}

		patient, err := client.CreatePatient(ctx, form)
		if err != nil {
			return therapistError(mgr, client, err)
		}
		fmt.Printf("✅ Patient %s registered (id %s)\n", patient.Name, patient.ID)
		return nil
	},
}

var therapistPatientCmd = &cobra.Command{
	Use:   "patient <id>",
	Short: "Show or update a patient",
	Long: `The patient subcommand shows a patient's full record. Pass flags to
update the clinical configuration, status or message quota instead:

  vida therapist patient pat-001 --status paused
  vida therapist patient pat-001 --limit 200
  vida therapist patient pat-001 --complaint "anxiety" --goal "sleep routine"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}
		id := args[0]

		if cmd.Flags().Changed("status") {
			if _, err := client.UpdatePatientStatus(ctx, id, patientStatus); err != nil {
				return therapistError(mgr, client, err)
			}
			fmt.Printf("✅ Status set to %s\n", patientStatus)
			return nil
		}
		if cmd.Flags().Changed("limit") {
			if _, err := client.UpdatePatientLimit(ctx, id, patientLimit); err != nil {
				return therapistError(mgr, client, err)
			}
			fmt.Printf("✅ Message limit set to %d\n", patientLimit)
			return nil
		}

		req := api.UpdatePatientConfigRequest{}
		changed := false
		if cmd.Flags().Changed("complaint") {
			req.ChiefComplaint = &patientComplaint
			changed = true
		}
		if cmd.Flags().Changed("goal") {
			req.TherapyGoal = &patientGoal
			changed = true
		}

		var patient *api.PatientConfig
		if changed {
			patient, err = client.UpdatePatient(ctx, id, req)
		} else {
			patient, err = client.Patient(ctx, id)
		}
		if err != nil {
			if api.IsStatus(err, 404) {
				fmt.Printf("❌ Patient %q was not found\n", id)
				return nil
			}
			return therapistError(mgr, client, err)
		}

		printPatient(patient)
		if changed {
			fmt.Println("✅ Patient updated")
		}
		return nil
	},
}

var therapistSessionsCmd = &cobra.Command{
	Use:   "sessions <patient-id>",
	Short: "List a patient's sessions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}

		list, err := client.PatientSessions(ctx, args[0])
		if err != nil {
			if api.IsStatus(err, 404) {
				fmt.Printf("❌ Patient %q was not found\n", args[0])
				return nil
			}
			return therapistError(mgr, client, err)
		}
		if len(list.Sessions) == 0 {
			pterm.Println("No sessions recorded yet.")
			return nil
		}
		for _, s := range list.Sessions {
			pterm.Printf("%s  %s  mood: %s\n", pterm.Cyan(s.Date), s.ID, s.Mood)
			pterm.Println("   " + s.Summary)
			if len(s.TopicsCovered) > 0 {
				pterm.Println(pterm.Gray("   Topics: " + strings.Join(s.TopicsCovered, ", ")))
			}
			if s.Homework != nil && *s.Homework != "" {
				pterm.Println(pterm.Gray("   Homework: " + *s.Homework))
			}
			pterm.Println()
		}
		return nil
	},
}

var therapistRecordCmd = &cobra.Command{
	Use:   "record <patient-id>",
	Short: "Record a new session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}
		if sessionDate == "" || sessionSummary == "" {
			return fmt.Errorf("--date and --summary are required")
		}

		req := api.CreateSessionRequest{
			Date:          sessionDate,
			Summary:       sessionSummary,
			Mood:          sessionMood,
			TopicsCovered: sessionTopics,
		}
		created, err := client.CreateSession(ctx, args[0], req)
		if err != nil {
			if api.IsStatus(err, 404) {
				fmt.Printf("❌ Patient %q was not found\n", args[0])
				return nil
			}
			return therapistError(mgr, client, err)
		}
		fmt.Printf("✅ Session %s recorded for %s\n", created.ID, created.Date)
		return nil
	},
}

var therapistAmendCmd = &cobra.Command{
	Use:   "amend <patient-id> <session-id>",
	Short: "Amend a recorded session",
	Long: `The amend subcommand corrects a previously recorded session, replacing
its date, summary, mood and topics. Session ids are shown by
'vida therapist sessions'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		mgr, client, ok, err := requireAuth(ctx)
		if err != nil || !ok {
			return err
		}
		if sessionDate == "" || sessionSummary == "" {
			return fmt.Errorf("--date and --summary are required")
		}

		req := api.CreateSessionRequest{
			Date:          sessionDate,
			Summary:       sessionSummary,
			Mood:          sessionMood,
			TopicsCovered: sessionTopics,
		}
		updated, err := client.UpdateSession(ctx, args[0], args[1], req)
		if err != nil {
			if api.IsStatus(err, 404) {
				fmt.Printf("❌ Session %q was not found for patient %q\n", args[1], args[0])
				return nil
			}
			return therapistError(mgr, client, err)
		}
		fmt.Printf("✅ Session %s updated\n", updated.ID)
		return nil
	},
}

// printPatient renders the full patient record.
func printPatient(p *api.PatientConfig) {
	rows := pterm.TableData{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Status", patientStatusBadge(p.Status)},
		{"Messages", fmt.Sprintf("%d/%d", p.MessagesUsed, p.MessagesLimit)},
		{"Response depth", p.ResponseDepth},
	}
	if p.ChiefComplaint != nil {
		rows = append(rows, []string{"Chief complaint", *p.ChiefComplaint})
	}
	if p.TherapyGoal != nil {
		rows = append(rows, []string{"Therapy goal", *p.TherapyGoal})
	}
	if p.TherapeuticApproach != nil {
		rows = append(rows, []string{"Approach", *p.TherapeuticApproach})
	}
	if len(p.FocusTopics) > 0 {
		rows = append(rows, []string{"Focus topics", strings.Join(p.FocusTopics, ", ")})
	}
	if len(p.AvoidTopics) > 0 {
		rows = append(rows, []string{"Avoid topics", strings.Join(p.AvoidTopics, ", ")})
	}
	if p.SuicidalIdeation {
		rows = append(rows, []string{"Risk", pterm.Red("suicidal ideation flagged")})
	}
	_ = pterm.DefaultTable.WithData(rows).Render()
	pterm.Printf("\n%d recorded session(s)\n", len(p.Sessions))
}

func patientStatusBadge(status string) string {
	switch status {
	case api.PatientStatusActive:
		return pterm.Green(status)
	case api.PatientStatusPaused:
		return pterm.Yellow(status)
	case api.PatientStatusDischarged:
		return pterm.Gray(status)
	default:
		return status
	}
}

func therapistError(mgr *session.Manager, client *api.Client, err error) error {
	if api.IsStatus(err, 403) {
		fmt.Println("❌ This command requires a therapist account")
		return nil
	}
	return presentAPIError(mgr, client, err)
}

func init() {
	rootCmd.AddCommand(therapistCmd)
	therapistCmd.AddCommand(therapistOverviewCmd, therapistPatientsCmd, therapistIntakeCmd,
		therapistPatientCmd, therapistSessionsCmd, therapistRecordCmd, therapistAmendCmd)

	therapistIntakeCmd.Flags().StringVar(&patientName, "name", "", "Patient name (prompted when omitted)")
	therapistIntakeCmd.Flags().StringVar(&patientEmail, "email", "", "Patient email (prompted when omitted)")
	therapistIntakeCmd.Flags().StringVar(&patientComplaint, "complaint", "", "Chief complaint")
	therapistIntakeCmd.Flags().StringVar(&patientGoal, "goal", "", "Therapy goal")
	therapistIntakeCmd.Flags().IntVar(&patientLimit, "limit", 0, "Message quota")

	therapistPatientCmd.Flags().StringVar(&patientStatus, "status", "", "Set status (active, paused or discharged)")
	therapistPatientCmd.Flags().IntVar(&patientLimit, "limit", 0, "Set message quota")
	therapistPatientCmd.Flags().StringVar(&patientComplaint, "complaint", "", "Set chief complaint")
	therapistPatientCmd.Flags().StringVar(&patientGoal, "goal", "", "Set therapy goal")

	therapistRecordCmd.Flags().StringVar(&sessionDate, "date", "", "Session date (YYYY-MM-DD)")
	therapistRecordCmd.Flags().StringVar(&sessionSummary, "summary", "", "Session summary")
	therapistRecordCmd.Flags().StringVar(&sessionMood, "mood", "neutral", "Patient mood (very_low, low, neutral, good, great)")
	therapistRecordCmd.Flags().StringSliceVar(&sessionTopics, "topics", nil, "Topics covered")

	therapistAmendCmd.Flags().StringVar(&sessionDate, "date", "", "Session date (YYYY-MM-DD)")
	therapistAmendCmd.Flags().StringVar(&sessionSummary, "summary", "", "Session summary")
	therapistAmendCmd.Flags().StringVar(&sessionMood, "mood", "neutral", "Patient mood (very_low, low, neutral, good, great)")
	therapistAmendCmd.Flags().StringSliceVar(&sessionTopics, "topics", nil, "Topics covered")
}
