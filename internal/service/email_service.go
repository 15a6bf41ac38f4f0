package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service. An empty fromEmail
// yields a disabled service that silently skips all sends.
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)
	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendWelcomeEmail sends a welcome email to a newly registered user
func (s *EmailService) SendWelcomeEmail(ctx context.Context, toEmail string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): welcome to %s", toEmail)
		return nil
	}

	subject := "Welcome to ExamEngine"
	textBody := fmt.Sprintf(`Hi,

Your ExamEngine account (%s) is ready.

What you can do next:
- Work through flashcard decks until every question sticks
- Take full-length practice tests with real exam weightage
- Answer the shared daily test to keep a streak going

Questions you nail on the first try are retired from your practice decks,
so every session focuses on what you still need.

---
This is an automated email from ExamEngine. Please do not reply.
`, toEmail)

	return s.sendEmail(ctx, toEmail, subject, textBody)
}

// SendImportReport mails the admin a summary of a bulk import
func (s *EmailService) SendImportReport(ctx context.Context, toEmail string, result *ImportResult) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): import report to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("Question import: %d inserted, %d duplicates, %d errors",
		result.Inserted, result.DuplicatesSkipped, len(result.Errors))

	var b strings.Builder
	fmt.Fprintf(&b, "Rows processed: %d\n", result.TotalRows)
	fmt.Fprintf(&b, "Questions inserted: %d\n", result.Inserted)
	fmt.Fprintf(&b, "Duplicates skipped: %d\n", result.DuplicatesSkipped)
	fmt.Fprintf(&b, "Decks created: %s\n", strings.Join(result.DecksCreated, ", "))
	if len(result.Errors) > 0 {
		fmt.Fprintf(&b, "\nRow errors:\n")
		for _, e := range result.Errors {
			fmt.Fprintf(&b, "  %s\n", e)
		}
	}

	return s.sendEmail(ctx, toEmail, subject, b.String())
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
