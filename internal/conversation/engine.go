package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/djobea/djobea-ai/internal/locations"
	"github.com/djobea/djobea-ai/internal/observability/metrics"
	"github.com/djobea/djobea-ai/internal/pricing"
	"github.com/djobea/djobea-ai/internal/requests"
	"github.com/djobea/djobea-ai/internal/scheduling"
	"github.com/djobea/djobea-ai/pkg/logging"
)

// Engine drives the guided conversation flow. Every transition takes the
// current state, the user input and the collected data, and produces a reply,
// the next state and a system action.
type Engine struct {
	sessions   SessionStore
	lifecycle  *requests.Service
	scheduler  *scheduling.Service
	landmarks  *locations.Matcher
	pricing    *pricing.Table
	classifier IntentClassifier
	logger     *logging.Logger
	metrics    *metrics.ConversationMetrics
	now        func() time.Time
}

// NewEngine wires the conversation engine. classifier and metrics may be nil;
// without a classifier unparseable input always asks for clarification.
func NewEngine(
	sessions SessionStore,
	lifecycle *requests.Service,
	scheduler *scheduling.Service,
	landmarks *locations.Matcher,
	table *pricing.Table,
	classifier IntentClassifier,
	logger *logging.Logger,
	m *metrics.ConversationMetrics,
) *Engine {
	if sessions == nil || lifecycle == nil || scheduler == nil || landmarks == nil {
		panic("conversation: sessions, lifecycle, scheduler and landmarks are required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		sessions:   sessions,
		lifecycle:  lifecycle,
		scheduler:  scheduler,
		landmarks:  landmarks,
		pricing:    table,
		classifier: classifier,
		logger:     logger.Named("conversation"),
		metrics:    m,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var _ Processor = (*Engine)(nil)

// ProcessMessage runs one conversation turn.
func (e *Engine) ProcessMessage(ctx context.Context, in Input) (*Reply, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, errors.New("conversation: user id required")
	}
	started := e.now()

	session, err := e.sessions.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = NewSession(in.UserID)
	}

	// Duplicate webhook delivery: replay the previous answer verbatim.
	if in.MessageID != "" && in.MessageID == session.LastMessageID && session.LastReply != nil {
		e.logger.Debug("duplicate delivery replayed",
			"user_id", in.UserID, "message_id", in.MessageID)
		cp := *session.LastReply
		return &cp, nil
	}

	text := strings.TrimSpace(in.ButtonValue)
	if text == "" {
		text = strings.TrimSpace(in.Text)
	}
	// Channels without interactive buttons render them as a numbered list, so
	// a bare digit selects the corresponding choice from the previous reply.
	if session.LastReply != nil {
		if idx, err := strconv.Atoi(text); err == nil &&
			idx >= 1 && idx <= len(session.LastReply.Buttons) {
			text = session.LastReply.Buttons[idx-1].Value
		}
	}

	reply := e.transition(ctx, session, text)
	reply.Timestamp = e.now()

	session.State = reply.State
	session.LastMessageID = in.MessageID
	session.LastReply = reply
	if err := e.sessions.Save(ctx, session); err != nil {
		e.logger.Error("session save failed", "user_id", in.UserID, "error", err)
	}

	e.metrics.ObserveInbound(string(reply.State), string(reply.Action))
	e.metrics.ObserveTurnLatency(string(reply.State), e.now().Sub(started).Seconds())
	return reply, nil
}

// transition dispatches one input through the state machine.
func (e *Engine) transition(ctx context.Context, s *Session, text string) *Reply {
	// A cancellation ask interrupts any state. Confirmation is always
	// explicit. When the session holds nothing to cancel (after expiry, for
	// instance) the user's active request is looked up before giving up.
	if s.State != StateCancellationConfirm && WantsCancellation(text) {
		if s.Data.RequestID != nil || s.Data.ServiceType != "" {
			return e.enterCancellation(s)
		}
		if req, err := e.lifecycle.FindActiveByUser(ctx, s.UserID); err != nil {
			e.logger.Warn("active request lookup failed", "user_id", s.UserID, "error", err)
		} else if req != nil {
			s.Data.RequestID = &req.ID
			return e.enterCancellation(s)
		}
		state, _ := NormalizeState(string(s.State))
		return &Reply{
			Text:   "Je ne trouve aucune demande en cours à annuler. Décrivez-moi votre problème si besoin !",
			State:  state,
			Action: ActionSendMessage,
		}
	}

	switch s.State {
	case StateInitial:
		return e.handleInitial(ctx, s, text)
	case StateServiceSelection:
		return e.handleServiceSelection(s, text)
	case StateLocationInput:
		return e.handleLocationInput(ctx, s, text)
	case StateDescriptionInput:
		return e.handleDescriptionInput(s, text)
	case StateUrgencySelection:
		return e.handleUrgencySelection(ctx, s, text)
	case StateConfirmation:
		return e.handleConfirmation(ctx, s, text)
	case StateCancellationConfirm:
		return e.handleCancellationConfirm(ctx, s, text)
	case StateModificationSelection:
		return e.handleModificationSelection(s, text)
	case StatePaymentSelection:
		return e.handlePaymentSelection(ctx, s, text)
	case StateCompleted:
		return e.handleCompleted(ctx, s, text)
	default:
		e.logger.Warn("session in unknown state, rewound", "state", s.State, "user_id", s.UserID)
		s.Reset()
		return e.handleInitial(ctx, s, text)
	}
}

func (e *Engine) handleInitial(ctx context.Context, s *Session, text string) *Reply {
	if strings.TrimSpace(text) == "" {
		return e.askService(greeting)
	}

	service := DetectService(text)
	urgent := SoundsUrgent(text)

	if service == "" && e.classifier != nil {
		intent := e.classify(ctx, s.State, text)
		if intent != nil {
			service = intent.ServiceType
			if intent.Location != "" && s.Data.Location == "" {
				e.absorbLocation(ctx, s, intent.Location)
			}
			urgent = urgent || intent.Urgent
		}
	}

	if service == "" {
		return e.askService(greeting)
	}

	s.Data.ServiceType = service
	if s.Data.Description == "" && len(strings.Fields(text)) >= 3 {
		// The opening message usually already describes the problem.
		s.Data.Description = text
	}
	if urgent {
		s.Data.Urgency = requests.UrgencyUrgent
	}
	if s.Data.Location == "" {
		e.absorbLocation(ctx, s, text)
	}

	if s.Data.Location == "" || s.Data.PendingLocation != "" {
		return e.askLocation(s)
	}
	if s.Data.Description == "" {
		return e.askDescription()
	}
	return e.askUrgency(s)
}

func (e *Engine) handleServiceSelection(s *Session, text string) *Reply {
	service := DetectService(text)
	if service == "" && requests.IsSupportedService(text) {
		service = strings.ToLower(strings.TrimSpace(text))
	}
	if service == "" {
		return e.askService("Je n'ai pas compris le service recherché.")
	}
	s.Data.ServiceType = service
	return e.askLocation(s)
}

func (e *Engine) handleLocationInput(ctx context.Context, s *Session, text string) *Reply {
	if s.Data.PendingLocation != "" {
		if IsAffirmative(text) {
			s.Data.Location = s.Data.PendingLocation
			s.Data.LocationConfirmed = true
			s.Data.PendingLocation = ""
			if best := e.landmarks.BestMatch(s.Data.Location, ""); best != nil {
				e.landmarks.RecordMatch(ctx, s.Data.Location, *best, true)
			}
			return e.afterLocation(s)
		}
		if IsNegative(text) {
			s.Data.PendingLocation = ""
			return &Reply{
				Text:   "D'accord. Indiquez-moi votre quartier ou un point de repère connu à Douala.",
				State:  StateLocationInput,
				Action: ActionRequestClarification,
			}
		}
		// Anything else is treated as a fresh location attempt.
		s.Data.PendingLocation = ""
	}

	if strings.TrimSpace(text) == "" {
		return &Reply{
			Text:   "Où se trouve le problème ? Donnez-moi votre quartier ou un point de repère.",
			State:  StateLocationInput,
			Action: ActionRequestClarification,
		}
	}

	e.absorbLocation(ctx, s, text)
	if s.Data.PendingLocation != "" {
		return e.askLocation(s)
	}
	if s.Data.Location == "" {
		// No landmark recognized; keep the user's own words.
		s.Data.Location = strings.TrimSpace(text)
		s.Data.LocationConfirmed = false
	}
	return e.afterLocation(s)
}

func (e *Engine) handleDescriptionInput(s *Session, text string) *Reply {
	if strings.TrimSpace(text) == "" {
		return &Reply{
			Text:   "Décrivez-moi le problème en quelques mots (ex : fuite sous l'évier de la cuisine).",
			State:  StateDescriptionInput,
			Action: ActionRequestClarification,
		}
	}
	s.Data.Description = strings.TrimSpace(text)
	return e.askUrgency(s)
}

func (e *Engine) handleUrgencySelection(ctx context.Context, s *Session, text string) *Reply {
	pref, ok := scheduling.ParsePreference(text)
	if !ok && SoundsUrgent(text) {
		pref, ok = scheduling.PreferenceUrgent, true
	}
	if !ok {
		return e.askUrgency(s)
	}
	if _, _, offerable := scheduling.Window(pref, time.Now()); !offerable {
		return &Reply{
			Text:    fmt.Sprintf("L'option %s n'est plus disponible aujourd'hui. Choisissez un autre créneau :", pref.Label()),
			Buttons: e.urgencyButtons(s),
			State:   StateUrgencySelection,
			Action:  ActionRequestClarification,
		}
	}

	s.Data.SchedulingPreference = string(pref)
	s.Data.UrgencySupplement = pref.Supplement()
	s.Data.Urgency = pref.Urgency()
	if e.pricing != nil {
		est := e.pricing.GetEstimate(ctx, s.Data.ServiceType)
		s.Data.EstimatedCost = est.Max
	}
	return e.askConfirmation(ctx, s)
}

func (e *Engine) handleConfirmation(ctx context.Context, s *Session, text string) *Reply {
	switch {
	case text == "modifier" || strings.Contains(strings.ToLower(text), "modifi"):
		return e.askModification()
	case IsAffirmative(text) || text == "confirmer":
		return e.createRequest(ctx, s)
	case IsNegative(text):
		return e.enterCancellation(s)
	}

	if e.classifier != nil {
		if intent := e.classify(ctx, s.State, text); intent != nil {
			switch intent.Action {
			case ActionCreateRequest:
				return e.createRequest(ctx, s)
			case ActionCancelRequest:
				return e.enterCancellation(s)
			case ActionUpdateRequest:
				return e.askModification()
			}
		}
	}
	return e.askConfirmation(ctx, s)
}

func (e *Engine) handleCancellationConfirm(ctx context.Context, s *Session, text string) *Reply {
	if IsAffirmative(text) {
		return e.cancelRequest(ctx, s)
	}
	if IsNegative(text) {
		resume := s.Data.ReturnState
		s.Data.ReturnState = ""
		switch {
		case resume == StateConfirmation && s.Data.Complete():
			return e.askConfirmation(ctx, s)
		case resume != "":
			return &Reply{
				Text:   "Parfait, on continue ! 👍",
				State:  resume,
				Action: ActionSendMessage,
			}
		default:
			return &Reply{
				Text:   "Parfait, on continue ! 👍",
				State:  StateCompleted,
				Action: ActionSendMessage,
			}
		}
	}
	return &Reply{
		Text:    "Confirmez-vous l'annulation ? Répondez OUI pour annuler, NON pour continuer.",
		Buttons: yesNoButtons(),
		State:   StateCancellationConfirm,
		Action:  ActionRequestClarification,
	}
}

func (e *Engine) handleModificationSelection(s *Session, text string) *Reply {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "service":
		return e.askService("Quel service vous faut-il finalement ?")
	case "lieu", "location":
		s.Data.Location = ""
		s.Data.LocationConfirmed = false
		s.Data.PendingLocation = ""
		return &Reply{
			Text:   "Indiquez-moi le bon quartier ou point de repère.",
			State:  StateLocationInput,
			Action: ActionSendMessage,
		}
	case "description":
		s.Data.Description = ""
		return e.askDescription()
	case "urgence", "créneau", "creneau":
		return e.askUrgency(s)
	}
	return e.askModification()
}

func (e *Engine) handlePaymentSelection(ctx context.Context, s *Session, text string) *Reply {
	method := strings.ToLower(strings.TrimSpace(text))
	switch method {
	case "cash", "espèces", "especes":
		method = "cash"
	case "mobile_money", "mobile money", "om", "momo":
		method = "mobile_money"
	default:
		return &Reply{
			Text:    "Comment souhaitez-vous régler ?",
			Buttons: paymentButtons(),
			State:   StatePaymentSelection,
			Action:  ActionRequestClarification,
		}
	}

	s.Data.PaymentMethod = method
	if s.Data.RequestID != nil {
		if _, err := e.lifecycle.UpdateStatus(ctx, *s.Data.RequestID, requests.StatusPaymentPending); err != nil {
			e.logger.Warn("payment status update rejected",
				"request_id", s.Data.RequestID, "error", err)
		}
	}
	return &Reply{
		Text:   "💳 C'est noté ! Le prestataire confirmera le paiement avec vous à la fin de l'intervention.",
		State:  StateCompleted,
		Action: ActionUpdateRequest,
	}
}

func (e *Engine) handleCompleted(ctx context.Context, s *Session, text string) *Reply {
	lower := strings.ToLower(text)

	if s.Data.RequestID != nil {
		switch {
		case strings.Contains(lower, "statut") || strings.Contains(lower, "status") ||
			strings.Contains(lower, "où en est") || strings.Contains(lower, "ou en est"):
			summary, err := e.lifecycle.GetRequestStatusSummary(ctx, *s.Data.RequestID)
			if err != nil {
				e.logger.Warn("status summary failed", "request_id", s.Data.RequestID, "error", err)
				summary = "Impossible de retrouver votre demande, notre équipe va vérifier."
			}
			return &Reply{Text: summary, State: StateCompleted, Action: ActionSendMessage}
		case strings.Contains(lower, "payer") || strings.Contains(lower, "paiement"):
			return &Reply{
				Text:    "Comment souhaitez-vous régler ?",
				Buttons: paymentButtons(),
				State:   StatePaymentSelection,
				Action:  ActionSendMessage,
			}
		}
	}

	// A new problem starts a fresh flow in the same session.
	if DetectService(text) != "" {
		s.Reset()
		return e.handleInitial(ctx, s, text)
	}

	if strings.TrimSpace(text) == "" || s.Data.RequestID == nil {
		s.Reset()
		return e.handleInitial(ctx, s, text)
	}
	return &Reply{
		Text:   "Votre demande est en cours. Envoyez « statut » pour un point d'avancement, ou décrivez un nouveau problème.",
		State:  StateCompleted,
		Action: ActionSendMessage,
	}
}

// createRequest opens the service request and launches the provider search.
// A replayed confirmation never creates a second request.
func (e *Engine) createRequest(ctx context.Context, s *Session) *Reply {
	if s.Data.RequestID != nil {
		summary, err := e.lifecycle.GetRequestStatusSummary(ctx, *s.Data.RequestID)
		if err != nil {
			summary = "Votre demande est déjà enregistrée."
		}
		return &Reply{Text: summary, State: StateCompleted, Action: ActionSendMessage}
	}
	if !s.Data.Complete() {
		return e.resumeCollection(s)
	}

	req, err := e.lifecycle.CreateRequest(ctx, requests.CreateInput{
		UserID:               s.UserID,
		ServiceType:          s.Data.ServiceType,
		Description:          s.Data.Description,
		Location:             s.Data.Location,
		LandmarkRefs:         s.Data.LandmarkRefs,
		LocationConfirmed:    s.Data.LocationConfirmed,
		Urgency:              s.Data.Urgency,
		SchedulingPreference: s.Data.SchedulingPreference,
		UrgencySupplement:    s.Data.UrgencySupplement,
		EstimatedCost:        s.Data.EstimatedCost,
	})
	if err != nil {
		e.logger.Error("request creation failed", "user_id", s.UserID, "error", err)
		return &Reply{
			Text:   "Une information manque pour enregistrer votre demande. Reprenons : quel est le service recherché ?",
			State:  StateServiceSelection,
			Action: ActionRequestClarification,
		}
	}
	s.Data.RequestID = &req.ID

	if pref, ok := scheduling.ParsePreference(s.Data.SchedulingPreference); ok {
		if _, err := e.scheduler.ApplyScheduling(ctx, req.ID, pref); err != nil {
			e.logger.Warn("scheduling persist failed", "request_id", req.ID, "error", err)
		}
	}

	if _, err := e.lifecycle.FindAndNotify(ctx, req.ID); err != nil {
		e.logger.Error("provider search failed", "request_id", req.ID, "error", err)
	}

	text := fmt.Sprintf(
		"✅ Demande %s enregistrée !\nNous contactons les meilleurs prestataires de votre zone. Vous recevrez une confirmation très vite.",
		req.Reference())
	if s.Data.UrgencySupplement > 0 {
		text += fmt.Sprintf("\n⚡ Supplément urgence appliqué : %d XAF.", s.Data.UrgencySupplement)
	}
	return &Reply{Text: text, State: StateCompleted, Action: ActionCreateRequest}
}

func (e *Engine) cancelRequest(ctx context.Context, s *Session) *Reply {
	if s.Data.RequestID != nil {
		_, err := e.lifecycle.Cancel(ctx, *s.Data.RequestID, "annulation demandée par le client")
		if errors.Is(err, requests.ErrNotCancellable) {
			return &Reply{
				Text:   "L'intervention est déjà en cours, je ne peux plus l'annuler automatiquement. Notre équipe vous contacte.",
				State:  StateCompleted,
				Action: ActionEscalateToHuman,
			}
		}
		if err != nil {
			e.logger.Error("cancellation failed", "request_id", s.Data.RequestID, "error", err)
			return &Reply{
				Text:   "Je n'ai pas pu annuler automatiquement, notre équipe prend le relais.",
				State:  StateCompleted,
				Action: ActionEscalateToHuman,
			}
		}
	}
	s.Reset()
	return &Reply{
		Text:   "❌ C'est annulé. N'hésitez pas à nous réécrire en cas de besoin !",
		State:  StateInitial,
		Action: ActionCancelRequest,
	}
}

func (e *Engine) enterCancellation(s *Session) *Reply {
	if s.Data.ReturnState == "" {
		s.Data.ReturnState = s.State
	}
	return &Reply{
		Text:    "Voulez-vous vraiment annuler ? Répondez OUI pour confirmer.",
		Buttons: yesNoButtons(),
		State:   StateCancellationConfirm,
		Action:  ActionSendMessage,
	}
}

// classify runs the LLM fallback, returning nil when it fails.
func (e *Engine) classify(ctx context.Context, state State, text string) *Intent {
	intent, err := e.classifier.Classify(ctx, state, text)
	if err != nil {
		e.logger.Warn("intent classification failed", "error", err)
		return nil
	}
	e.metrics.ObserveClassifierFallback()
	return &intent
}

// absorbLocation tries to resolve a landmark from free text. High-confidence
// matches apply silently; mid-confidence matches are parked for confirmation.
func (e *Engine) absorbLocation(ctx context.Context, s *Session, text string) {
	best := e.landmarks.BestMatch(text, "")
	if best == nil {
		return
	}
	resolved := fmt.Sprintf("%s, %s", best.Landmark.Name, best.Landmark.Area)
	if best.AutoConfirmed() {
		s.Data.Location = resolved
		s.Data.LocationConfirmed = true
		s.Data.LandmarkRefs = append(s.Data.LandmarkRefs, best.Landmark.Name)
		e.landmarks.RecordMatch(ctx, text, *best, true)
		return
	}
	s.Data.PendingLocation = resolved
	e.landmarks.RecordMatch(ctx, text, *best, false)
}

func (e *Engine) afterLocation(s *Session) *Reply {
	if s.Data.Description == "" {
		return e.askDescription()
	}
	return e.askUrgency(s)
}

func (e *Engine) resumeCollection(s *Session) *Reply {
	switch {
	case s.Data.ServiceType == "":
		return e.askService("Reprenons. Quel service vous faut-il ?")
	case s.Data.Location == "":
		return &Reply{
			Text:   "Il me manque votre localisation. Quel est votre quartier ?",
			State:  StateLocationInput,
			Action: ActionRequestClarification,
		}
	case s.Data.Description == "":
		return e.askDescription()
	default:
		return e.askUrgency(s)
	}
}

const greeting = "Bonjour 👋 Je suis l'assistant Djobea. Je vous trouve un professionnel à Douala en quelques minutes."

func (e *Engine) askService(intro string) *Reply {
	return &Reply{
		Text: intro + "\nQuel service vous faut-il ?",
		Buttons: []Button{
			{Label: "🔧 Plomberie", Value: requests.ServicePlumbing},
			{Label: "⚡ Électricité", Value: requests.ServiceElectric},
			{Label: "🔌 Électroménager", Value: requests.ServiceAppliance},
		},
		State:  StateServiceSelection,
		Action: ActionSendMessage,
	}
}

func (e *Engine) askLocation(s *Session) *Reply {
	if s.Data.PendingLocation != "" {
		return &Reply{
			Text:    fmt.Sprintf("Vous êtes bien vers %s ?", s.Data.PendingLocation),
			Buttons: yesNoButtons(),
			State:   StateLocationInput,
			Action:  ActionSendMessage,
		}
	}
	return &Reply{
		Text:   "📍 Où se trouve le problème ? Donnez-moi votre quartier ou un point de repère (ex : carrefour Kotto).",
		State:  StateLocationInput,
		Action: ActionSendMessage,
	}
}

func (e *Engine) askDescription() *Reply {
	return &Reply{
		Text:   "📝 Décrivez-moi le problème en quelques mots.",
		State:  StateDescriptionInput,
		Action: ActionSendMessage,
	}
}

func (e *Engine) askUrgency(s *Session) *Reply {
	return &Reply{
		Text:    "⏰ Quand souhaitez-vous l'intervention ?",
		Buttons: e.urgencyButtons(s),
		State:   StateUrgencySelection,
		Action:  ActionSendMessage,
	}
}

func (e *Engine) urgencyButtons(s *Session) []Button {
	options := e.scheduler.GetSchedulingOptions(s.Data.ServiceType, s.Data.Location)
	buttons := make([]Button, 0, len(options))
	for _, opt := range options {
		label := opt.Label
		if opt.Supplement > 0 {
			label = fmt.Sprintf("%s (+%d XAF)", opt.Label, opt.Supplement)
		}
		buttons = append(buttons, Button{Label: label, Value: string(opt.Preference)})
	}
	return buttons
}

func (e *Engine) askConfirmation(ctx context.Context, s *Session) *Reply {
	var estimate string
	if e.pricing != nil {
		est := e.pricing.GetEstimate(ctx, s.Data.ServiceType)
		estimate = est.FormatRange()
	}

	var b strings.Builder
	b.WriteString("Récapitulatif de votre demande :\n")
	fmt.Fprintf(&b, "• Service : %s\n", s.Data.ServiceType)
	fmt.Fprintf(&b, "• Lieu : %s\n", s.Data.Location)
	fmt.Fprintf(&b, "• Problème : %s\n", s.Data.Description)
	if pref, ok := scheduling.ParsePreference(s.Data.SchedulingPreference); ok {
		fmt.Fprintf(&b, "• Créneau : %s\n", pref.Label())
	}
	if s.Data.UrgencySupplement > 0 {
		fmt.Fprintf(&b, "• Supplément urgence : %d XAF\n", s.Data.UrgencySupplement)
	}
	if estimate != "" {
		fmt.Fprintf(&b, "• Tarif estimé : %s\n", estimate)
	}
	b.WriteString("\nOn y va ?")

	return &Reply{
		Text: b.String(),
		Buttons: []Button{
			{Label: "✅ Confirmer", Value: "confirmer"},
			{Label: "✏️ Modifier", Value: "modifier"},
			{Label: "❌ Annuler", Value: "annuler"},
		},
		State:  StateConfirmation,
		Action: ActionSendMessage,
	}
}

func (e *Engine) askModification() *Reply {
	return &Reply{
		Text: "Que voulez-vous modifier ?",
		Buttons: []Button{
			{Label: "Service", Value: "service"},
			{Label: "Lieu", Value: "lieu"},
			{Label: "Description", Value: "description"},
			{Label: "Créneau", Value: "urgence"},
		},
		State:  StateModificationSelection,
		Action: ActionSendMessage,
	}
}

func yesNoButtons() []Button {
	return []Button{
		{Label: "Oui", Value: "oui"},
		{Label: "Non", Value: "non"},
	}
}

func paymentButtons() []Button {
	return []Button{
		{Label: "💵 Espèces", Value: "cash"},
		{Label: "📱 Mobile Money", Value: "mobile_money"},
	}
}
