package mailer

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

// Notifier writes the actual notification mails.
//
// Every method swallows send errors after logging them: notifications
// never fail the operation they report on.
type Notifier struct {
	mailer Mailer
	admins []string
	logger *log.Logger
}

func NewNotifier(mailer Mailer, admins []string) *Notifier {
	return &Notifier{
		mailer: mailer,
		admins: admins,
		logger: log.New("mailer"),
	}
}

func (n *Notifier) send(ctx context.Context, mail Mail) {
	if len(mail.To) == 0 {
		return
	}
	if err := n.mailer.Send(ctx, mail); err != nil {
		n.logger.Warnf("mail %q to %v not sent: %s", mail.Subject, mail.To, err)
	}
}

// RegistrationReceived acknowledges step 1 to the candidate and alerts the
// admins.
func (n *Notifier) RegistrationReceived(ctx context.Context, reg domain.Registration) {
	n.send(ctx, Mail{
		To:      []string{reg.Email},
		Subject: "Votre demande de pré-inscription",
		Body: fmt.Sprintf(
			"Bonjour %s,\n\nVotre demande de pré-inscription (niveau %d) a bien été reçue.\nVous recevrez un lien pour compléter votre dossier.\n",
			reg.Prenom, reg.Niveau,
		),
	})
	n.send(ctx, Mail{
		To:      n.admins,
		Subject: fmt.Sprintf("Nouvelle pré-inscription: %s %s", reg.Prenom, reg.Nom),
		Body: fmt.Sprintf(
			"Demande %s: %s %s <%s>, niveau %d.\n",
			reg.Id, reg.Prenom, reg.Nom, reg.Email, reg.Niveau,
		),
	})
}

// RegistrationCompleted confirms the opened account to the candidate.
func (n *Notifier) RegistrationCompleted(ctx context.Context, reg domain.Registration) {
	n.send(ctx, Mail{
		To:      []string{reg.Email},
		Subject: "Votre inscription est complète",
		Body: fmt.Sprintf(
			"Bonjour %s,\n\nVotre dossier est complet et votre compte est ouvert.\nVous pouvez maintenant vous connecter avec votre adresse e-mail.\n",
			reg.Prenom,
		),
	})
}

// DocumentStatusChanged notifies recipients that a document moved.
func (n *Notifier) DocumentStatusChanged(ctx context.Context, doc domain.Document, to []string) {
	n.send(ctx, Mail{
		To:      to,
		Subject: fmt.Sprintf("Document %s: %s", domain.TemplateFor(doc.Kind).Title, doc.Status),
		Body: fmt.Sprintf(
			"Le document %s (%s) est passé au statut '%s'.\n",
			doc.Id, domain.TemplateFor(doc.Kind).Title, doc.Status,
		),
	})
}

// OrderPlaced confirms an order to the buyer and alerts the admins.
func (n *Notifier) OrderPlaced(ctx context.Context, order domain.Order) {
	body := fmt.Sprintf("Commande %s:\n", order.Id)
	for _, item := range order.Items {
		body += fmt.Sprintf(
			"  - %s x%d (%.2f €)\n",
			item.Name, item.Quantity, float64(item.UnitPriceCents)/100,
		)
	}
	body += fmt.Sprintf("Total: %.2f €\n", float64(order.TotalCents)/100)

	n.send(ctx, Mail{
		To:      []string{order.Email},
		Subject: "Confirmation de votre commande",
		Body:    body,
	})
	n.send(ctx, Mail{
		To:      n.admins,
		Subject: fmt.Sprintf("Nouvelle commande %s", order.Id),
		Body:    body,
	})
}
