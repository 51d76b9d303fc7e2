package engine

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/eino/schema"

	"github.com/sunset-resort/concierge/internal/agent/model"
	logx "github.com/sunset-resort/concierge/pkg/logger"
)

// Engine is the conversation state machine. It holds no per-session state:
// each turn takes a ConversationState, mutates it, and returns the outbound
// text. Concurrent sessions may share one Engine; the reservation store is
// the only shared mutable resource and serializes its own writes.
type Engine struct {
	classifier model.IntentClassifier
	answerer   model.QuestionAnswerer
	store      model.ReservationStore
	hotel      model.HotelProfile
}

func New(classifier model.IntentClassifier, answerer model.QuestionAnswerer, store model.ReservationStore, hotel model.HotelProfile) *Engine {
	return &Engine{
		classifier: classifier,
		answerer:   answerer,
		store:      store,
		hotel:      hotel,
	}
}

// Step processes one inbound message and returns the outbound reply. Both
// messages are appended to the state's history whatever the outcome. A turn
// on a terminal stage first restarts the workflow: history survives, slot
// progress and pending intent do not.
func (e *Engine) Step(ctx context.Context, st *model.ConversationState, text string) string {
	if st.Stage.Terminal() {
		st.ResetWorkflow()
	}

	prior := st.History
	st.History = append(st.History, schema.UserMessage(text))

	var reply string
	switch st.Stage {
	case model.StageAwaitingIntent:
		reply = e.detectIntent(ctx, st, text, prior)
	case model.StageCollectingBooking:
		reply = e.collectSlot(ctx, st, text, e.bookingSlots(), e.finalizeBooking)
	case model.StageCollectingReschedule:
		reply = e.collectSlot(ctx, st, text, e.rescheduleSlots(), e.finalizeReschedule)
	default:
		logx.Error().Str("session_id", st.SessionID).Str("stage", string(st.Stage)).Msg("turn on unexpected stage")
		st.Stage = model.StageError
		reply = msgSystemError
	}

	st.History = append(st.History, schema.AssistantMessage(reply, nil))
	return reply
}

// detectIntent classifies the inbound text and routes into a workflow.
func (e *Engine) detectIntent(ctx context.Context, st *model.ConversationState, text string, prior []*schema.Message) string {
	intent, err := e.classifier.Classify(ctx, text, prior)
	if err != nil {
		logx.Warn().Err(err).Str("session_id", st.SessionID).Msg("classification degraded")
		return msgDegraded
	}

	logx.Debug().Str("session_id", st.SessionID).Str("intent", intent.String()).Msg("intent detected")

	switch intent {
	case model.IntentBooking:
		st.PendingIntent = model.IntentBooking
		st.Stage = model.StageCollectingBooking
		st.SlotIndex = 0
		return e.bookingSlots()[0].prompt

	case model.IntentRescheduling:
		st.PendingIntent = model.IntentRescheduling
		st.Stage = model.StageCollectingReschedule
		st.SlotIndex = 0
		return e.rescheduleSlots()[0].prompt

	case model.IntentQuestion:
		st.PendingIntent = model.IntentQuestion
		st.Stage = model.StageAnsweringQuestion
		answer := e.answerer.Answer(ctx, text, prior)
		st.Stage = model.StageComplete
		return answer

	default:
		// stay in awaiting_intent; the user is asked to rephrase
		return msgClarifyIntent
	}
}

// collectSlot validates the inbound text against the current slot. Rejection
// keeps the stage and slot index unchanged. Acceptance stores the value and
// either prompts for the next slot or runs the finalizer; only a successful
// finalize reaches StageComplete.
func (e *Engine) collectSlot(ctx context.Context, st *model.ConversationState, text string, slots []slotSpec, finalize func(context.Context, *model.ConversationState) (string, bool)) string {
	if st.SlotIndex < 0 || st.SlotIndex >= len(slots) {
		logx.Error().Str("session_id", st.SessionID).Int("slot_index", st.SlotIndex).Msg("slot index out of range")
		st.Stage = model.StageError
		return msgSystemError
	}

	spec := slots[st.SlotIndex]
	value, reject := spec.validate(ctx, st, text)
	if reject != "" {
		logx.Debug().Str("session_id", st.SessionID).Str("slot", spec.name).Msg("slot input rejected")
		return reject
	}

	st.Slots[spec.name] = value
	if st.SlotIndex+1 < len(slots) {
		st.SlotIndex++
		return slots[st.SlotIndex].prompt
	}

	reply, ok := finalize(ctx, st)
	if ok {
		st.Stage = model.StageComplete
	}
	return reply
}

// finalizeBooking writes the new reservation. This is the single store write
// of the booking workflow; on failure the stage is kept so the user can retry.
func (e *Engine) finalizeBooking(ctx context.Context, st *model.ConversationState) (string, bool) {
	guests, err := strconv.Atoi(st.Slots[SlotGuests])
	if err != nil {
		logx.Error().Err(err).Str("session_id", st.SessionID).Msg("collected guests slot is not numeric")
		st.Stage = model.StageError
		return msgSystemError, false
	}

	r := &model.Reservation{
		CheckIn:  st.Slots[SlotCheckIn],
		CheckOut: st.Slots[SlotCheckOut],
		RoomType: st.Slots[SlotRoomType],
		Guests:   guests,
		Status:   model.ReservationActive,
	}

	id, err := e.store.Put(ctx, r)
	if err != nil {
		logx.Error().Err(err).Str("session_id", st.SessionID).Msg("booking write failed")
		return msgBookingWriteFailed, false
	}
	r.ID = id
	return bookingConfirmation(id, r), true
}

// finalizeReschedule applies the new dates to the targeted reservation.
func (e *Engine) finalizeReschedule(ctx context.Context, st *model.ConversationState) (string, bool) {
	id := st.Slots[SlotReservationID]
	checkIn := st.Slots[SlotNewCheckIn]
	checkOut := st.Slots[SlotNewCheckOut]

	err := e.store.Update(ctx, id, model.ReservationUpdate{
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	})
	if err != nil {
		if errors.Is(err, model.ErrReservationNotFound) {
			// the record disappeared between slot validation and the write;
			// restart the workflow from the id slot
			logx.Warn().Str("session_id", st.SessionID).Str("reservation_id", id).Msg("reservation vanished before update")
			st.SlotIndex = 0
			delete(st.Slots, SlotReservationID)
			delete(st.Slots, SlotNewCheckIn)
			delete(st.Slots, SlotNewCheckOut)
			return msgReservationNotFound, false
		}
		logx.Error().Err(err).Str("session_id", st.SessionID).Str("reservation_id", id).Msg("reschedule write failed")
		return msgRescheduleWriteFailed, false
	}
	return rescheduleConfirmation(id, checkIn, checkOut), true
}
