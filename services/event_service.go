package services

import (
	"context"
	"fmt"
	"time"

	"notification-service/models"
	"notification-service/repository"
	"notification-service/sender"

	"go.uber.org/zap"
)

// RealtimeEmitter pushes the current notification snapshot to the user's
// live channel. Best-effort: implementations swallow their own transport
// errors and never fail the orchestrator.
type RealtimeEmitter interface {
	EmitUserNotification(userID string, n *models.Notification)
}

// EventService is the delivery orchestrator: one entry point per event
// kind, all driving the same protocol — build the notification, persist it
// PENDING, attempt the email channel where the kind's rule includes one,
// persist the recorded attempt, then always emit the snapshot.
type EventService interface {
	ProcessSuccessfulLogin(ctx context.Context, cmd models.LoginCommand) error
	ProcessNewOrder(ctx context.Context, cmd models.OrderCommand) error
	ProcessOrderStatusChange(ctx context.Context, cmd models.OrderCommand) error
	ProcessPasswordResetRequest(ctx context.Context, cmd models.PasswordResetCommand) error
	ProcessPasswordResetVerified(ctx context.Context, cmd models.PasswordResetCommand) error
	ProcessPasswordResetCompleted(ctx context.Context, cmd models.PasswordResetCommand) error
	ProcessPaymentCompleted(ctx context.Context, cmd models.PaymentCommand) error
	ProcessPaymentFailed(ctx context.Context, cmd models.PaymentCommand) error
}

type eventService struct {
	repo    repository.NotificationRepository
	email   sender.EmailSender
	emitter RealtimeEmitter
	factory *NotificationFactory
	logger  *zap.Logger
	now     func() time.Time
}

func NewEventService(
	repo repository.NotificationRepository,
	email sender.EmailSender,
	emitter RealtimeEmitter,
	factory *NotificationFactory,
	logger *zap.Logger,
) EventService {
	return &eventService{
		repo:    repo,
		email:   email,
		emitter: emitter,
		factory: factory,
		logger:  logger,
		now:     time.Now,
	}
}

// emailDelivery describes the email step of one delivery. generic selects
// the templated send built from the notification's own title/message;
// otherwise subject and htmlBody are kind-specific.
type emailDelivery struct {
	subject  string
	htmlBody string
	generic  bool
}

// deliver runs the shared protocol. The notification is saved before the
// email attempt so readers always see a previously-committed state; the
// second save lands the attempt outcome. The email send itself cannot be
// rolled back, so it is deliberately outside any transaction. The snapshot
// emit happens regardless of email outcome.
func (s *eventService) deliver(ctx context.Context, n *models.Notification, email *emailDelivery) error {
	saved, err := s.repo.Save(ctx, n)
	if err != nil {
		return fmt.Errorf("save notification: %w", err)
	}

	if email != nil {
		var successful bool
		if email.generic {
			successful = s.email.SendNotificationEmail(ctx, saved)
		} else {
			successful = s.email.SendHTMLEmail(ctx, saved.UserEmail, email.subject, email.htmlBody)
		}

		errMsg := ""
		if !successful {
			errMsg = "Error sending email"
		}
		saved.AddDeliveryAttempt(models.ChannelEmail, successful, errMsg, s.now())

		if _, err := s.repo.Save(ctx, saved); err != nil {
			return fmt.Errorf("save delivery attempt: %w", err)
		}
	}

	s.emitter.EmitUserNotification(saved.UserID, saved)
	return nil
}

func (s *eventService) ProcessSuccessfulLogin(ctx context.Context, cmd models.LoginCommand) error {
	s.logger.Info("processing login event",
		zap.String("user_id", cmd.UserID),
		zap.String("email", cmd.Email),
	)

	n := s.factory.NewLoginNotification(cmd)
	html, err := renderEmailTemplate("login.html", loginEmailData{
		Name: cmd.Name,
		IP:   cmd.IP,
		Date: emailDate(s.now()),
	})
	if err != nil {
		return fmt.Errorf("process login notification: %w", err)
	}

	if err := s.deliver(ctx, n, &emailDelivery{
		subject:  "Nueva Actividad de Inicio de Sesión - ECI Express",
		htmlBody: html,
	}); err != nil {
		return fmt.Errorf("process login notification: %w", err)
	}

	s.logger.Info("login notification processed", zap.String("notification_id", n.ID))
	return nil
}

func (s *eventService) ProcessNewOrder(ctx context.Context, cmd models.OrderCommand) error {
	s.logger.Info("processing new order event", zap.String("order_id", cmd.OrderID))

	n := s.factory.NewOrderNotification(cmd)
	if err := s.deliver(ctx, n, nil); err != nil {
		return fmt.Errorf("process new order notification: %w", err)
	}

	s.logger.Info("new order notification processed", zap.String("order_id", cmd.OrderID))
	return nil
}

func (s *eventService) ProcessOrderStatusChange(ctx context.Context, cmd models.OrderCommand) error {
	s.logger.Info("processing order status change",
		zap.String("order_id", cmd.OrderID),
		zap.String("order_status", cmd.OrderStatus),
	)

	n := s.factory.NewOrderStatusNotification(cmd)
	if err := s.deliver(ctx, n, &emailDelivery{generic: true}); err != nil {
		return fmt.Errorf("process order status notification: %w", err)
	}

	s.logger.Info("order status notification processed", zap.String("order_id", cmd.OrderID))
	return nil
}

func (s *eventService) ProcessPasswordResetRequest(ctx context.Context, cmd models.PasswordResetCommand) error {
	s.logger.Info("processing password reset request", zap.String("email", cmd.Email))

	n := s.factory.NewPasswordResetRequestNotification(cmd)
	html, err := renderEmailTemplate("password_reset_request.html", passwordResetEmailData{
		Name: cmd.Name,
		Code: cmd.VerificationCode,
	})
	if err != nil {
		return fmt.Errorf("process password reset notification: %w", err)
	}

	if err := s.deliver(ctx, n, &emailDelivery{
		subject:  "Código de Verificación - Recuperación de Contraseña",
		htmlBody: html,
	}); err != nil {
		return fmt.Errorf("process password reset notification: %w", err)
	}

	s.logger.Info("password reset notification processed", zap.String("email", cmd.Email))
	return nil
}

func (s *eventService) ProcessPasswordResetVerified(ctx context.Context, cmd models.PasswordResetCommand) error {
	s.logger.Info("processing password reset verification", zap.String("email", cmd.Email))

	n := s.factory.NewPasswordResetVerifiedNotification(cmd)
	if err := s.deliver(ctx, n, nil); err != nil {
		return fmt.Errorf("process password reset verification: %w", err)
	}

	s.logger.Info("password reset verification processed", zap.String("email", cmd.Email))
	return nil
}

func (s *eventService) ProcessPasswordResetCompleted(ctx context.Context, cmd models.PasswordResetCommand) error {
	s.logger.Info("processing password reset completion", zap.String("email", cmd.Email))

	n := s.factory.NewPasswordResetCompletedNotification(cmd)
	html, err := renderEmailTemplate("password_reset_completed.html", passwordResetEmailData{
		Name: cmd.Name,
	})
	if err != nil {
		return fmt.Errorf("process password reset completion: %w", err)
	}

	if err := s.deliver(ctx, n, &emailDelivery{
		subject:  "Contraseña Actualizada Exitosamente",
		htmlBody: html,
	}); err != nil {
		return fmt.Errorf("process password reset completion: %w", err)
	}

	s.logger.Info("password reset completion processed", zap.String("email", cmd.Email))
	return nil
}

func (s *eventService) ProcessPaymentCompleted(ctx context.Context, cmd models.PaymentCommand) error {
	s.logger.Info("processing payment completed event",
		zap.String("order_id", cmd.OrderID),
		zap.String("user_id", cmd.UserID),
		zap.Float64("amount", cmd.Amount),
	)

	n := s.factory.NewPaymentCompletedNotification(cmd)
	html, err := renderEmailTemplate("payment_completed.html", paymentEmailData{
		Name:          cmd.Name,
		OrderID:       cmd.OrderID,
		Amount:        fmt.Sprintf("%.2f", cmd.Amount),
		PaymentMethod: cmd.PaymentMethod,
		Date:          emailDate(s.now()),
	})
	if err != nil {
		return fmt.Errorf("process payment completed notification: %w", err)
	}

	if err := s.deliver(ctx, n, &emailDelivery{
		subject:  fmt.Sprintf("Pago Completado Exitosamente - Orden #%s", cmd.OrderID),
		htmlBody: html,
	}); err != nil {
		return fmt.Errorf("process payment completed notification: %w", err)
	}

	s.logger.Info("payment completed notification processed", zap.String("order_id", cmd.OrderID))
	return nil
}

func (s *eventService) ProcessPaymentFailed(ctx context.Context, cmd models.PaymentCommand) error {
	s.logger.Info("processing payment failed event",
		zap.String("order_id", cmd.OrderID),
		zap.String("user_id", cmd.UserID),
	)

	n := s.factory.NewPaymentFailedNotification(cmd)
	html, err := renderEmailTemplate("payment_failed.html", paymentEmailData{
		Name:          cmd.Name,
		OrderID:       cmd.OrderID,
		PaymentMethod: cmd.PaymentMethod,
	})
	if err != nil {
		return fmt.Errorf("process payment failed notification: %w", err)
	}

	if err := s.deliver(ctx, n, &emailDelivery{
		subject:  fmt.Sprintf("Problema con tu Pago - Orden #%s", cmd.OrderID),
		htmlBody: html,
	}); err != nil {
		return fmt.Errorf("process payment failed notification: %w", err)
	}

	s.logger.Info("payment failed notification processed", zap.String("order_id", cmd.OrderID))
	return nil
}
