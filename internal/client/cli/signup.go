package cli

import (
	"context"

	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/forms"
	"github.com/realamirrezajoulani/rental-admin-cli/internal/client/models"
)

// Signup registers a new customer account. The form collects identity and
// contact fields; gender, birthday and address are sent with the fixed
// placeholder defaults the backend expects (see models).
func (a *App) Signup(ctx context.Context) {
	buf := forms.NewBuffer(forms.SignupSchema())
	if err := a.promptCreate(buf); err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	payload, err := buf.CreatePayload()
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}

	req := models.CustomerSignup{
		FirstName:  fieldString(payload, "first_name"),
		LastName:   fieldString(payload, "last_name"),
		Username:   fieldString(payload, "username"),
		Email:      fieldString(payload, "email"),
		Phone:      fieldString(payload, "phone"),
		NationalID: fieldString(payload, "national_id"),
		Password:   fieldString(payload, "password"),
		Gender:     models.DefaultSignupGender,
		Birthday:   models.DefaultSignupBirthday,
		Address:    models.DefaultSignupAddress,
	}

	rec, err := a.customers.Create(ctx, req)
	if err != nil {
		a.feedback.ReportFailure(ctx, err)
		return
	}
	a.feedback.ReportSuccess(ctx, "Customer registered: "+rec.Username)
}
