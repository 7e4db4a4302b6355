package email

import "encoding/json"

// Mail types with a template.
const (
	TypePeriodClosed         = "period_closed"
	TypePayrollPaid          = "payroll_paid"
	TypeConfirmationReminder = "confirmation_reminder"
)

// MailMessage is the JSON body published on the mail queue.
type MailMessage struct {
	Type string                 `json:"type"`
	To   string                 `json:"to"`
	Data map[string]interface{} `json:"data"`
}

func (m MailMessage) Encode() ([]byte, error) {
	return json.Marshal(m)
}

func DecodeMailMessage(body []byte) (MailMessage, error) {
	var m MailMessage
	err := json.Unmarshal(body, &m)
	return m, err
}
