package mailer

import (
	"errors"
	"html/template"
	"strings"
	"time"
)

// QuotaNudgeParams feeds the "quota reached" upgrade email. The caller owns
// deduplication; this package only renders and addresses the message.
type QuotaNudgeParams struct {
	To          string
	PlanName    string    // Plan the user exhausted.
	ActionLabel string    // Human label, e.g. "photoshoots" or "photo merges".
	UpgradePlan string    // Plan that lifts the ceiling.
	UpgradeURL  string    // Checkout or pricing page link.
	PeriodEnd   time.Time // When the quota resets.
}

var nudgeTmpl = template.Must(template.New("quota-nudge").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 520px; margin: 0 auto;">
  <h2>You&rsquo;ve used all your {{.ActionLabel}} this month</h2>
  <p>Your {{.PlanName}} plan has reached its monthly limit for {{.ActionLabel}}.
  Your quota resets on {{.ResetDate}}.</p>
  <p>Upgrade to {{.UpgradePlan}} to keep creating without waiting.</p>
  <p><a href="{{.UpgradeURL}}" style="display: inline-block; padding: 12px 24px; background: #4f46e5; color: #ffffff; text-decoration: none; border-radius: 6px;">Upgrade to {{.UpgradePlan}}</a></p>
</body>
</html>
`))

// QuotaNudge renders the upgrade nudge message for a quota denial.
func QuotaNudge(p QuotaNudgeParams) (Message, error) {
	var body strings.Builder
	err := nudgeTmpl.Execute(&body, struct {
		QuotaNudgeParams
		ResetDate string
	}{
		QuotaNudgeParams: p,
		ResetDate:        p.PeriodEnd.Format("January 2, 2006"),
	})
	if err != nil {
		return Message{}, errors.Join(ErrFailedToRender, err)
	}

	return Message{
		To:       p.To,
		Subject:  "You've reached your monthly " + p.ActionLabel + " limit",
		BodyHTML: body.String(),
		Tag:      "quota-nudge",
	}, nil
}
