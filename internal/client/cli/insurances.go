package cli

import (
	"context"
	"fmt"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/api"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/forms"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/panels"
)

// ListInsurances fetches and prints the policies. Unlike vehicles, listing
// insurances requires a session.
func (a *App) ListInsurances(ctx context.Context) {
	stale, err := a.insurances.Load(ctx, api.ListOptions{})
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	if stale {
		fmt.Fprintln(a.out, "warning: backend unreachable, showing last cached list")
	}

	items := a.insurances.Panel().Items()
	for _, ins := range items {
		fmt.Fprintln(a.out, ins)
	}
	fmt.Fprintf(a.out, "%d policy(ies)\n", len(items))
}

// AddInsurance collects a new policy and submits it.
func (a *App) AddInsurance(ctx context.Context) {
	if err := a.ensureInsurancesLoaded(ctx); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	buf := forms.NewBuffer(forms.InsuranceSchema())
	if err := a.promptCreate(buf); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	payload, err := buf.CreatePayload()
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	rec, err := a.insurances.Panel().Create(ctx, payload)
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	buf.Reset()
	a.feedback.ReportSuccess(ctx, "Insurance created: "+rec.ID)
}

// DeleteInsurance removes a policy after explicit confirmation. The backend
// has no update endpoint for policies, so delete-and-recreate is the only
// correction path.
func (a *App) DeleteInsurance(ctx context.Context, rawID string) {
	id, ok := a.parseID(ctx, rawID)
	if !ok {
		return
	}
	if err := a.ensureInsurancesLoaded(ctx); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	confirmed, err := a.feedback.ConfirmDestructive("Delete insurance " + id + "?")
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}

	if err := a.insurances.Panel().Remove(ctx, id); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	a.feedback.ReportSuccess(ctx, "Insurance deleted: "+id)
}

func (a *App) ensureInsurancesLoaded(ctx context.Context) error {
	if a.insurances.Panel().Phase() == panels.Loaded {
		return nil
	}
	_, err := a.insurances.Load(ctx, api.ListOptions{})
	return err
}
