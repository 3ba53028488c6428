package utils

import (
	"fmt"
	"log"
	"os"

	"velora_storefront/internal/models"

	"github.com/wneessen/go-mail"
)

// SendOrderConfirmationEmail envoie le récapitulatif de commande.
// Best-effort : une erreur SMTP ne doit jamais faire échouer la commande.
func SendOrderConfirmationEmail(to string, order models.Order) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		// SMTP non configuré (dev local) — on saute l'envoi
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(fmt.Sprintf("Votre commande Velora %s", order.Reference))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	return client.DialAndSend(msg)
}

// orderConfirmationHTML génère le HTML de confirmation de commande
func orderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%.2f</td>
			</tr>`, item.Name, item.Price)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
  <body>
    <h2>Merci pour votre commande !</h2>
    <p>Référence : <strong>%s</strong></p>
    <p>Paiement : %s — Statut : %s</p>
    <table border="0" cellpadding="4">
      <tr><th align="left">Article</th><th align="left">Prix</th></tr>
      %s
    </table>
    <p>Total : <strong>%.2f</strong></p>
    <p>Adresse de livraison : %s</p>
  </body>
</html>`, order.Reference, order.PaymentMethod, order.Status, itemsHTML, order.Total, order.Address)
}
