package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/Jacopo21/gutmann-privatebank/internal/config"
	"github.com/Jacopo21/gutmann-privatebank/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending projection reports via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendProjectionReport sends a plain-text projection summary to the recipient
func (s *Sender) SendProjectionReport(to string, input models.ProjectionInput, result *models.ProjectionResult) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Investment Growth Projection - %d Year Horizon", input.HorizonYears)

	body := fmt.Sprintf(
		"Investment Growth Projection\n"+
			"============================\n\n"+
			"Initial Investment:   %.2f\n"+
			"Monthly Contribution: %.2f\n"+
			"Risk Profile:         %d/8 (%s)\n"+
			"Horizon:              %d years\n"+
			"Simulated Paths:      %d\n\n"+
			"Projected Outcome After %d Years\n"+
			"--------------------------------\n"+
			"Median Portfolio Value: %.2f\n"+
			"Lower Bound (10%%):      %.2f\n"+
			"Upper Bound (90%%):      %.2f\n"+
			"Total Investment:       %.2f\n"+
			"Total Return (median):  %.2f\n",
		input.InitialAmount, input.MonthlyContribution,
		result.RiskLevel, result.RiskLabel,
		input.HorizonYears, result.Simulations, input.HorizonYears,
		result.Summary.FinalMedian,
		result.Records[len(result.Records)-1].LowerP10,
		result.Records[len(result.Records)-1].UpperP90,
		result.Summary.TotalInvestment,
		result.Summary.TotalReturn,
	)
	body += "\nProjections are simulated estimates, not guarantees of future performance.\n"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
