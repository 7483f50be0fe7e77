package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/api"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/forms"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/panels"
)

// ListVehicles fetches and prints the fleet. Vehicle listing is public;
// no session is needed.
func (a *App) ListVehicles(ctx context.Context) {
	stale, err := a.vehicles.Load(ctx, api.ListOptions{})
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	if stale {
		fmt.Fprintln(a.out, "warning: backend unreachable, showing last cached list")
	}

	items := a.vehicles.Panel().Items()
	for _, v := range items {
		fmt.Fprintln(a.out, v)
	}
	fmt.Fprintf(a.out, "%d vehicle(s)\n", len(items))
}

// AddVehicle collects a new vehicle and submits it.
func (a *App) AddVehicle(ctx context.Context) {
	if err := a.ensureVehiclesLoaded(ctx); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	buf := forms.NewBuffer(forms.VehicleSchema())
	if err := a.promptCreate(buf); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	payload, err := buf.CreatePayload()
	if err != nil {
		// client-side validation failed: no network call was made and the
		// form can be re-run immediately
		a.feedback.ReportFailure(ctx, err)
		return
	}

	rec, err := a.vehicles.Panel().Create(ctx, payload)
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	buf.Reset()
	a.feedback.ReportSuccess(ctx, "Vehicle created: "+rec.ID)
}

// EditVehicle loads a displayed vehicle into an edit buffer, re-prompts
// every field with the current value as default, and patches the record.
func (a *App) EditVehicle(ctx context.Context, rawID string) {
	id, ok := a.parseID(ctx, rawID)
	if !ok {
		return
	}
	if err := a.ensureVehiclesLoaded(ctx); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	rec, found := a.vehicles.Panel().Find(id)
	if !found {
		a.feedback.ReportFailure(ctx, fmt.Errorf("no vehicle %s in the current list; run 'vehicles' first", id))
		return
	}

	fields, err := forms.FieldsOf(rec)
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	buf := forms.NewBuffer(forms.VehicleSchema())
	buf.LoadForEdit(id, fields)
	if err := a.promptEdit(buf); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	payload, err := buf.UpdatePayload()
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	updated, err := a.vehicles.Panel().Update(ctx, buf.RecordID(), payload)
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	buf.Reset()
	a.feedback.ReportSuccess(ctx, "Vehicle updated: "+updated.ID)
}

// DeleteVehicle removes a vehicle after explicit confirmation. Declining
// issues no network call and leaves the list unchanged.
func (a *App) DeleteVehicle(ctx context.Context, rawID string) {
	id, ok := a.parseID(ctx, rawID)
	if !ok {
		return
	}
	if err := a.ensureVehiclesLoaded(ctx); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	confirmed, err := a.feedback.ConfirmDestructive("Delete vehicle " + id + "?")
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Cancelled.")
		return
	}

	if err := a.vehicles.Panel().Remove(ctx, id); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	a.feedback.ReportSuccess(ctx, "Vehicle deleted: "+id)
}

func (a *App) ensureVehiclesLoaded(ctx context.Context) error {
	if a.vehicles.Panel().Phase() == panels.Loaded {
		return nil
	}
	_, err := a.vehicles.Load(ctx, api.ListOptions{})
	return err
}

// parseID validates a user-entered record id before any network call.
func (a *App) parseID(ctx context.Context, raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		a.feedback.ReportFailure(ctx, fmt.Errorf("invalid record id %q: %w", raw, err))
		return "", false
	}
	return id.String(), true
}
