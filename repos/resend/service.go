package resend

import (
	"context"
	"fmt"
	"html"

	resend "github.com/resend/resend-go/v2"
	"golang.org/x/xerrors"

	"github.com/webbongda/matchday/repos/store"
)

// Service sends notices about account activity to administrators.
type Service struct {
	client *resend.Client
	from   string
	to     []string
}

// NewService creates a mailer that sends from the given address to every
// address in to.
func NewService(apiKey, from string, to []string) *Service {
	return &Service{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

// SendRegistrationNotice tells the administrators that u signed up.
func (s *Service) SendRegistrationNotice(ctx context.Context, u *store.User) error {
	if len(s.to) == 0 {
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      s.to,
		Subject: fmt.Sprintf("New registration: %s", u.MSV),
		Html:    registrationTemplate(u),
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return xerrors.Errorf("send registration notice for %s: %w", u.MSV, err)
	}
	return nil
}

func registrationTemplate(u *store.User) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        td {
            padding: 4px 12px 4px 0;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>New member</h2>
        <p>A new account was registered on Matchday:</p>
        <table>
            <tr><td>MSV</td><td>%s</td></tr>
            <tr><td>Name</td><td>%s</td></tr>
            <tr><td>Phone</td><td>%s</td></tr>
            <tr><td>Registered</td><td>%s</td></tr>
        </table>
        <p>You can deactivate the account from the admin panel if it does not belong to a student.</p>
    </div>
</body>
</html>`, html.EscapeString(u.MSV), html.EscapeString(u.FullName), html.EscapeString(u.Phone), u.CreatedAt.Format("2006-01-02 15:04 MST"))
}
