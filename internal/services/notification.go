package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/velunaskf/veluna-api/internal/errors"
	"github.com/velunaskf/veluna-api/internal/models"
	repository "github.com/velunaskf/veluna-api/internal/repositories"
	"github.com/velunaskf/veluna-api/pkg/sendgrid"
)

type NotificationService struct {
	repo         repository.NotificationRepository
	userRepo     repository.UserRepository
	emailService sendgrid.EmailService
}

func NewNotificationService(repo repository.NotificationRepository, userRepo repository.UserRepository, emailService sendgrid.EmailService) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, emailService: emailService}
}

// SendEmail records the notification, attempts delivery, and updates the
// audit row with the outcome.
func (n *NotificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.Notification, error) {
	notification := &models.Notification{
		Type:      models.NotificationTypeEmail,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Content:   req.Content,
		Status:    models.NotificationStatusPending,
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return nil, apperrors.DatabaseError("Failed to create notification record").WithError(err)
	}

	if err := n.emailService.Send(ctx, req); err != nil {
		notification.Status = models.NotificationStatusFailed
		notification.Error = err.Error()

		_ = n.repo.MarkFailed(ctx, notification.ID, notification.Error)

		return nil, apperrors.ThirdPartyError("Failed to send email").WithError(err)
	}

	notification.Status = models.NotificationStatusSent

	if err := n.repo.MarkSent(ctx, notification.ID); err != nil {
		return nil, apperrors.DatabaseError("Email sent but failed to update notification status").WithError(err)
	}

	return notification, nil
}

// SendOrderConfirmation emails the order summary to the buyer: the account
// email for signed-in customers, the contact email for guests.
func (n *NotificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	recipient := order.GuestEmail
	name := order.GuestName

	if order.UserID != nil {
		user, err := n.userRepo.GetUserByID(ctx, *order.UserID)
		if err != nil {
			return fmt.Errorf("failed to resolve order recipient: %w", err)
		}

		recipient = user.Email
		name = user.Name
	}

	if recipient == "" {
		return fmt.Errorf("order %s has no recipient email", order.OrderNumber)
	}

	req := &models.EmailNotificationRequest{
		Recipient:   recipient,
		Subject:     fmt.Sprintf("Your VELUNA order %s is confirmed", order.OrderNumber),
		Content:     orderConfirmationText(name, order),
		HTMLContent: orderConfirmationHTML(name, order),
	}

	_, err := n.SendEmail(ctx, req)

	return err
}

func orderConfirmationText(name string, order *models.Order) string {
	var b strings.Builder

	if name == "" {
		name = "there"
	}

	fmt.Fprintf(&b, "Hi %s,\n\nThank you for your order!\n\nOrder number: %s\n\n", name, order.OrderNumber)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s x%d: %.2f\n", item.ProductName, item.Quantity, item.TotalPrice)
	}

	fmt.Fprintf(&b, "\nSubtotal: %.2f\n", order.Subtotal)

	if order.DiscountAmount > 0 {
		fmt.Fprintf(&b, "Discount (%s): -%.2f\n", order.DiscountCode, order.DiscountAmount)
	}

	fmt.Fprintf(&b, "Shipping: %.2f\nTax: %.2f\nTotal: %.2f\n\n", order.ShippingCost, order.TaxAmount, order.TotalAmount)
	b.WriteString("We will email you again when your order ships.\n\nVELUNA by SKF\n")

	return b.String()
}

func orderConfirmationHTML(name string, order *models.Order) string {
	var b strings.Builder

	if name == "" {
		name = "there"
	}

	b.WriteString(`<div style="font-family:Helvetica,Arial,sans-serif;max-width:600px;margin:0 auto">`)
	b.WriteString(`<h2 style="letter-spacing:2px">VELUNA</h2>`)
	fmt.Fprintf(&b, `<p>Hi %s,</p><p>Thank you for your order! Here is your summary:</p>`, name)
	fmt.Fprintf(&b, `<p><strong>Order number:</strong> %s</p>`, order.OrderNumber)
	b.WriteString(`<table style="width:100%;border-collapse:collapse">`)

	for _, item := range order.Items {
		fmt.Fprintf(&b, `<tr><td style="padding:8px;border-bottom:1px solid #eee">%s &times; %d</td>`+
			`<td style="padding:8px;border-bottom:1px solid #eee;text-align:right">%.2f</td></tr>`,
			item.ProductName, item.Quantity, item.TotalPrice)
	}

	fmt.Fprintf(&b, `<tr><td style="padding:8px">Subtotal</td><td style="padding:8px;text-align:right">%.2f</td></tr>`, order.Subtotal)

	if order.DiscountAmount > 0 {
		fmt.Fprintf(&b, `<tr><td style="padding:8px">Discount (%s)</td><td style="padding:8px;text-align:right">-%.2f</td></tr>`,
			order.DiscountCode, order.DiscountAmount)
	}

	fmt.Fprintf(&b, `<tr><td style="padding:8px">Shipping</td><td style="padding:8px;text-align:right">%.2f</td></tr>`, order.ShippingCost)
	fmt.Fprintf(&b, `<tr><td style="padding:8px">Tax</td><td style="padding:8px;text-align:right">%.2f</td></tr>`, order.TaxAmount)
	fmt.Fprintf(&b, `<tr><td style="padding:8px"><strong>Total</strong></td><td style="padding:8px;text-align:right"><strong>%.2f</strong></td></tr>`, order.TotalAmount)
	b.WriteString(`</table>`)
	b.WriteString(`<p>We will email you again when your order ships.</p>`)
	b.WriteString(`<p style="color:#888">VELUNA by SKF</p></div>`)

	return b.String()
}
