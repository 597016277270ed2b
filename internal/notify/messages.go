package notify

import (
	"fmt"
	"strings"

	"github.com/segyhp/placement-engine/internal/domain"

	"github.com/shopspring/decimal"
)

// Message is a rendered notification ready to be sent.
type Message struct {
	RecipientID string `json:"recipientId"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

// documentWording holds the Portuguese noun for a document kind and the
// gender the adjectives around it agree with.
type documentWording struct {
	possessive string
	noun       string
	title      string
	payment    string
	masculine  bool
}

func wordingFor(kind domain.DocumentKind) documentWording {
	if kind == domain.DocumentKindCommissionReport {
		return documentWording{
			possessive: "Seu",
			noun:       "relatório de comissão",
			title:      "Relatório de Comissão",
			payment:    "Pagamento de Comissão Confirmado",
			masculine:  true,
		}
	}
	return documentWording{
		possessive: "Sua",
		noun:       "nota fiscal",
		title:      "Nota Fiscal",
		payment:    "Pagamento de Nota Confirmado",
	}
}

// agree turns a feminine participle such as "aprovada" into the form matching w.
func (w documentWording) agree(feminine string) string {
	if w.masculine {
		return strings.TrimSuffix(feminine, "a") + "o"
	}
	return feminine
}

// ReviewMessage renders the notification for a reviewed document.
func ReviewMessage(doc domain.ApprovableDocument) Message {
	w := wordingFor(doc.Kind)

	var body string
	status := string(doc.Status)
	switch doc.Status {
	case domain.DocumentStatusApproved:
		body = fmt.Sprintf(`%s %s "%s" foi %s pelo financeiro. Aguarde o pagamento.`,
			w.possessive, w.noun, doc.Title, w.agree("aprovada"))
		status = w.agree(status)
	case domain.DocumentStatusRejected:
		reason := ""
		if doc.RejectionReason != nil {
			reason = *doc.RejectionReason
		}
		body = fmt.Sprintf(`%s %s "%s" foi %s pelo financeiro. Motivo: %s`,
			w.possessive, w.noun, doc.Title, w.agree("rejeitada"), reason)
		status = w.agree(status)
	default:
		body = fmt.Sprintf(`%s %s "%s" está em análise pelo financeiro.`, w.possessive, w.noun, doc.Title)
	}

	return Message{
		RecipientID: doc.OwnerID,
		Title:       w.title + " " + status,
		Body:        body,
	}
}

// PaymentMessage renders the notification for a paid document.
func PaymentMessage(doc domain.ApprovableDocument) Message {
	w := wordingFor(doc.Kind)

	paidOn := ""
	if doc.PaidAt != nil {
		paidOn = doc.PaidAt.Format("02/01/2006")
	}

	return Message{
		RecipientID: doc.OwnerID,
		Title:       w.payment,
		Body: fmt.Sprintf(`%s %s "%s" foi %s com sucesso no dia %s.`,
			w.possessive, w.noun, doc.Title, w.agree("paga"), paidOn),
	}
}

// ReminderMessage renders the notice for an upcoming installment of a contract.
func ReminderMessage(contract domain.Contract, event domain.InstallmentEvent) Message {
	what, expected := "O pagamento de rendimento", "previsto"
	if event.Kind == domain.InstallmentKindPrincipalReturn {
		what, expected = "A devolução do capital", "prevista"
	}

	return Message{
		RecipientID: contract.OwnerID,
		Title:       "Pagamento Próximo",
		Body: fmt.Sprintf("%s do contrato %s no valor de %s está %s para %s.",
			what, contract.Code, FormatBRL(event.Amount), expected, event.DueDate.Format("02/01/2006")),
	}
}

// FormatBRL formats an amount as Brazilian currency, e.g. R$ 10.000,50.
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + "R$ " + grouped.String() + "," + cents
}
