package messaging

import (
	"fmt"
	"strings"

	"github.com/djobea/djobea-ai/pkg/logging"
)

const (
	// ProviderAuto sends over WhatsApp first, then plain SMS.
	ProviderAuto = "auto"
	// ProviderWhatsApp forces the WhatsApp sender when credentials exist.
	ProviderWhatsApp = "whatsapp"
	// ProviderSMS forces the SMS sender when credentials exist.
	ProviderSMS = "sms"
)

// SelectionConfig captures the credentials required to build outbound senders.
type SelectionConfig struct {
	Preference     string
	AccountSID     string
	AuthToken      string
	WhatsAppNumber string
	SMSNumber      string
}

// BuildSender instantiates a Sender based on the preferred channel.
// It returns the sender, the channel that was selected, and a reason when no
// sender could be initialized.
func BuildSender(cfg SelectionConfig, logger *logging.Logger) (Sender, string, string) {
	if logger == nil {
		logger = logging.Default()
	}
	preference := strings.ToLower(strings.TrimSpace(cfg.Preference))
	if preference == "" {
		preference = ProviderAuto
	}

	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		return nil, "", "TWILIO_ACCOUNT_SID or TWILIO_AUTH_TOKEN missing"
	}

	missing := map[string]string{}
	var whatsapp Sender
	var sms Sender

	if cfg.WhatsAppNumber != "" {
		whatsapp = NewTwilioSender(cfg.AccountSID, cfg.AuthToken, cfg.WhatsAppNumber, ChannelWhatsApp, logger)
	} else {
		missing[ProviderWhatsApp] = "TWILIO_WHATSAPP_NUMBER missing"
	}
	if cfg.SMSNumber != "" {
		sms = NewTwilioSender(cfg.AccountSID, cfg.AuthToken, cfg.SMSNumber, ChannelSMS, logger)
	} else {
		missing[ProviderSMS] = "TWILIO_SMS_NUMBER missing"
	}

	if preference != ProviderAuto {
		if preference == ProviderWhatsApp && whatsapp != nil {
			return whatsapp, ProviderWhatsApp, ""
		}
		if preference == ProviderSMS && sms != nil {
			return sms, ProviderSMS, ""
		}
		reason := missing[preference]
		if reason == "" {
			reason = fmt.Sprintf("%s sender not configured", preference)
		}
		return nil, "", reason
	}

	if whatsapp != nil && sms != nil {
		return NewFailoverSender(whatsapp, ProviderWhatsApp, sms, ProviderSMS, logger), ProviderWhatsApp + "+" + ProviderSMS, ""
	}
	if whatsapp != nil {
		return whatsapp, ProviderWhatsApp, ""
	}
	if sms != nil {
		return sms, ProviderSMS, ""
	}

	var reasons []string
	for _, provider := range []string{ProviderWhatsApp, ProviderSMS} {
		if msg := missing[provider]; msg != "" {
			reasons = append(reasons, fmt.Sprintf("%s: %s", provider, msg))
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "no messaging channels configured")
	}
	return nil, "", strings.Join(reasons, "; ")
}
