// Package slotcli expõe o calculador de horários na linha de comando,
// sem banco: expediente e agendamentos vêm de arquivos JSON.
package slotcli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/domain/availability"
	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/timezone"
)

// workingDay segue o formato de PUT /api/me/working-hours.
type workingDay struct {
	DayOfWeek  int    `json:"day_of_week"`
	IsActive   bool   `json:"is_active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

// booking segue o formato de GET /api/me/appointments.
type booking struct {
	ID              string `json:"id"`
	ServiceID       string `json:"service_id"`
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

type slotsOptions struct {
	date         string
	duration     int
	step         int
	hoursFile    string
	bookingsFile string
	asJSON       bool
}

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "slotctl",
		Short:         "Ferramentas offline da agenda",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newSlotsCmd())
	return root
}

func newSlotsCmd() *cobra.Command {
	opts := slotsOptions{}

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Lista os horários livres de um dia",
		Example: "  slotctl slots --date 2026-10-19 --duration 30 " +
			"--hours hours.json --appointments appts.json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSlots(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.date, "date", "", "dia no formato YYYY-MM-DD")
	f.IntVar(&opts.duration, "duration", 0, "duração do serviço em minutos")
	f.IntVar(&opts.step, "step", availability.Granularity, "passo da grade em minutos")
	f.StringVar(&opts.hoursFile, "hours", "", "JSON com o expediente da semana")
	f.StringVar(&opts.bookingsFile, "appointments", "", "JSON com os agendamentos do dia")
	f.BoolVar(&opts.asJSON, "json", false, "saída em JSON")

	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("duration")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func runSlots(out, errOut io.Writer, opts slotsOptions) error {
	date, err := time.Parse(timezone.DateLayout, opts.date)
	if err != nil {
		return fmt.Errorf("invalid --date %q: %w", opts.date, err)
	}
	if opts.duration <= 0 {
		return fmt.Errorf("--duration must be positive")
	}

	var days []workingDay
	if err := readJSON(opts.hoursFile, &days); err != nil {
		return err
	}

	var bookings []booking
	if opts.bookingsFile != "" {
		if err := readJSON(opts.bookingsFile, &bookings); err != nil {
			return err
		}
	}

	res := availability.Calculator{Step: opts.step}.Compute(availability.Input{
		Duration:     opts.duration,
		Date:         date,
		WorkingHours: toRules(days),
		Existing:     toExisting(bookings),
	})

	for _, u := range res.Unresolved {
		fmt.Fprintf(errOut, "warning: ignoring appointment %q at %q (unknown duration)\n", u.ID, u.StartTime)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		return enc.Encode(map[string]any{
			"date":  opts.date,
			"slots": res.Slots,
		})
	}

	for _, s := range res.Slots {
		if _, err := fmt.Fprintln(out, s); err != nil {
			return err
		}
	}
	return nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func toRules(days []workingDay) []availability.WorkingHourRule {
	rules := make([]availability.WorkingHourRule, 0, len(days))
	for _, d := range days {
		rules = append(rules, availability.WorkingHourRule{
			DayOfWeek:  d.DayOfWeek,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
			IsActive:   d.IsActive,
		})
	}
	return rules
}

func toExisting(bookings []booking) []availability.ExistingAppointment {
	out := make([]availability.ExistingAppointment, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, availability.ExistingAppointment{
			ID:              b.ID,
			ServiceID:       b.ServiceID,
			StartTime:       b.StartTime,
			ServiceDuration: b.DurationMinutes,
		})
	}
	return out
}
