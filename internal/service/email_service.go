package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"vocaday/internal/models"
)

// EmailService sends the daily-words digest via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
}

// NewEmailService creates a new email service. An empty fromEmail or toEmail
// yields a disabled service that skips all sends.
func NewEmailService(awsRegion, fromEmail, fromName, toEmail string) (*EmailService, error) {
	if fromEmail == "" || toEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL or DIGEST_TO_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendDailyWordsDigest emails the list of words added for a date
func (s *EmailService) SendDailyWordsDigest(ctx context.Context, date string, words []models.NewWord) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): daily digest for %s", date)
		return nil
	}

	subject := fmt.Sprintf("VocaDay: %d new words for %s", len(words), date)

	var rows strings.Builder
	var lines strings.Builder
	for _, w := range words {
		fmt.Fprintf(&rows, "<tr><td><strong>%s</strong></td><td>%s</td><td>%s</td></tr>\n",
			w.Word, w.Meaning, w.Sentence)
		fmt.Fprintf(&lines, "- %s: %s\n  %s\n", w.Word, w.Meaning, w.Sentence)
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		table { border-collapse: collapse; width: 100%%; }
		td { border: 1px solid #ddd; padding: 8px; }
	</style>
</head>
<body>
	<div class="container">
		<h1>New words for %s</h1>
		<table>%s</table>
		<p>This is an automated email from VocaDay. Please do not reply.</p>
	</div>
</body>
</html>
`, date, rows.String())

	textBody := fmt.Sprintf("New words for %s:\n\n%s\n---\nThis is an automated email from VocaDay. Please do not reply.\n",
		date, lines.String())

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{s.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send digest email: %w", err)
	}

	log.Printf("Daily words digest sent to %s (%d words)", s.toEmail, len(words))
	return nil
}
