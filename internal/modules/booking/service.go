package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"skillswap/internal/domain"
	"skillswap/internal/modules/notification"
	"skillswap/internal/modules/swap"
	"skillswap/internal/saga"
)

// Service is the booking lifecycle engine. Every operation is one atomic
// multi-step transition: steps run in a fixed order, each committed step
// appends its reverse-action to a compensation log, and any failure unwinds
// the log in LIFO order before the error is returned. The slot, booking,
// agreement and notification records therefore never disagree after a call
// returns, short of a RollbackError.
type Service struct {
	bookings BookingRepository
	slots    SlotStore
	swaps    SwapCoordinator
	notifs   NotificationSink
	logger   *zap.Logger
}

func NewService(bookings BookingRepository, slots SlotStore, swaps SwapCoordinator, notifs NotificationSink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		bookings: bookings,
		slots:    slots,
		swaps:    swaps,
		notifs:   notifs,
		logger:   logger,
	}
}

// Create opens a booking request. Steps: reserve the slot if one is named,
// insert the booking, propose the agreement for a swap, notify the
// provider. A failure after the slot reservation releases it and deletes
// whatever was partially created.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if req.ProviderID <= 0 || req.SeekerID <= 0 || req.ProviderID == req.SeekerID {
		return nil, ErrValidation
	}
	if req.IsSkillSwap && (req.SeekerSkillID <= 0 || req.ProviderSkillID <= 0) {
		return nil, ErrValidation
	}
	if req.SlotID == nil {
		if !req.EndTime.After(req.StartTime) {
			return nil, ErrValidation
		}
	}

	b := &domain.Booking{
		ProviderID:   req.ProviderID,
		SeekerID:     req.SeekerID,
		SlotID:       req.SlotID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		ServiceLabel: req.ServiceLabel,
		Notes:        req.Notes,
		Status:       domain.BookingPending,
		IsSkillSwap:  req.IsSkillSwap,
	}
	if req.IsSkillSwap {
		b.PaymentStatus = domain.PaymentNotRequired
	} else {
		b.PaymentStatus = domain.PaymentPending
	}

	clog := saga.NewLog("booking.create", s.logger)

	if req.SlotID != nil {
		slotID := *req.SlotID

		slot, err := s.slots.GetByID(ctx, slotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if slot.ProviderID != req.ProviderID {
			return nil, ErrValidation
		}

		ok, err := s.slots.Reserve(ctx, slotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !ok {
			return nil, ErrSlotUnavailable
		}
		clog.Record("reserve_slot", func(ctx context.Context) error {
			return s.slots.Release(ctx, slotID)
		})

		b.StartTime = slot.StartTime
		b.EndTime = slot.EndTime
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, s.fail(ctx, clog, "create", "insert_booking", err)
	}
	clog.Record("insert_booking", func(ctx context.Context) error {
		return s.bookings.Delete(ctx, b.ID)
	})

	var agreementID *int64
	if req.IsSkillSwap {
		ag, err := s.swaps.Propose(ctx, swap.ProposeRequest{
			BookingID:        b.ID,
			ProposerID:       req.SeekerID,
			RecipientID:      req.ProviderID,
			ProposerSkillID:  req.SeekerSkillID,
			RecipientSkillID: req.ProviderSkillID,
		})
		if err != nil {
			return nil, s.fail(ctx, clog, "create", "propose_agreement", err)
		}
		clog.Record("propose_agreement", func(ctx context.Context) error {
			return s.swaps.Remove(ctx, ag.ID)
		})
		agreementID = &ag.ID
	}

	if err := s.notify(ctx, clog, notification.Transition{
		Booking:     b,
		To:          domain.BookingPending,
		ActorID:     req.SeekerID,
		AgreementID: agreementID,
	}); err != nil {
		return nil, s.fail(ctx, clog, "create", "enqueue_notifications", err)
	}

	clog.Discard()
	return b, nil
}

// RespondToRequest is the provider accepting or declining a pending
// request. Accept confirms the booking and agreement; decline cancels the
// booking, frees the slot, and rejects the agreement.
func (s *Service) RespondToRequest(ctx context.Context, bookingID, actorID int64, accept bool) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ProviderID != actorID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidStatusTransition
	}

	to := domain.BookingConfirmed
	if !accept {
		to = domain.BookingCancelled
	}

	clog := saga.NewLog("booking.respond", s.logger)

	ok, err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingPending, to)
	if err != nil {
		return nil, s.fail(ctx, clog, "respond", "update_booking_status", err)
	}
	if !ok {
		// a concurrent respond won the conditional write
		return nil, ErrInvalidStatusTransition
	}
	clog.Record("update_booking_status", func(ctx context.Context) error {
		_, err := s.bookings.UpdateStatus(ctx, b.ID, to, domain.BookingPending)
		return err
	})

	if !accept && b.SlotID != nil {
		slotID := *b.SlotID
		if err := s.slots.Release(ctx, slotID); err != nil {
			return nil, s.fail(ctx, clog, "respond", "release_slot", err)
		}
		clog.Record("release_slot", func(ctx context.Context) error {
			_, err := s.slots.Reserve(ctx, slotID)
			return err
		})
	}

	var agreementID *int64
	if b.IsSkillSwap {
		ag, err := s.swaps.GetByBookingID(ctx, b.ID)
		if err != nil {
			return nil, s.fail(ctx, clog, "respond", "load_agreement", err)
		}
		swapTo := domain.SwapStatusFor(to)
		if err := s.swaps.Transition(ctx, ag.ID, domain.SwapPending, swapTo); err != nil {
			return nil, s.fail(ctx, clog, "respond", "update_agreement", err)
		}
		clog.Record("update_agreement", func(ctx context.Context) error {
			return s.swaps.Revert(ctx, ag.ID, swapTo, domain.SwapPending)
		})
		agreementID = &ag.ID
	}

	if err := s.notify(ctx, clog, notification.Transition{
		Booking:     b,
		From:        domain.BookingPending,
		To:          to,
		ActorID:     actorID,
		AgreementID: agreementID,
	}); err != nil {
		return nil, s.fail(ctx, clog, "respond", "enqueue_notifications", err)
	}

	clog.Discard()
	return s.bookings.GetByID(ctx, b.ID)
}

// Complete marks a confirmed booking done. Re-invoking on an
// already-completed booking returns the current snapshot without error and
// without a second notification: "mark completed" is routinely
// double-clicked, so this one transition is idempotent on purpose.
func (s *Service) Complete(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.HasParticipant(actorID) {
		return nil, ErrForbidden
	}
	if b.Status == domain.BookingCompleted {
		return b, nil
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidStatusTransition
	}

	clog := saga.NewLog("booking.complete", s.logger)

	ok, err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, domain.BookingCompleted)
	if err != nil {
		return nil, s.fail(ctx, clog, "complete", "update_booking_status", err)
	}
	if !ok {
		// lost a race; if the winner completed it, honor the idempotence
		cur, gerr := s.bookings.GetByID(ctx, b.ID)
		if gerr == nil && cur.Status == domain.BookingCompleted {
			return cur, nil
		}
		return nil, ErrInvalidStatusTransition
	}
	clog.Record("update_booking_status", func(ctx context.Context) error {
		_, err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingCompleted, domain.BookingConfirmed)
		return err
	})

	var agreementID *int64
	if b.IsSkillSwap {
		ag, err := s.swaps.GetByBookingID(ctx, b.ID)
		if err != nil {
			return nil, s.fail(ctx, clog, "complete", "load_agreement", err)
		}
		if err := s.swaps.Transition(ctx, ag.ID, domain.SwapAccepted, domain.SwapCompleted); err != nil {
			return nil, s.fail(ctx, clog, "complete", "update_agreement", err)
		}
		clog.Record("update_agreement", func(ctx context.Context) error {
			return s.swaps.Revert(ctx, ag.ID, domain.SwapCompleted, domain.SwapAccepted)
		})
		agreementID = &ag.ID
	}

	if err := s.notify(ctx, clog, notification.Transition{
		Booking:     b,
		From:        domain.BookingConfirmed,
		To:          domain.BookingCompleted,
		ActorID:     actorID,
		AgreementID: agreementID,
	}); err != nil {
		return nil, s.fail(ctx, clog, "complete", "enqueue_notifications", err)
	}

	clog.Discard()
	return s.bookings.GetByID(ctx, b.ID)
}

// Cancel ends a pending or confirmed booking, frees the slot and rejects
// the agreement. Either participant may cancel.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.HasParticipant(actorID) {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidStatusTransition
	}

	from := b.Status
	clog := saga.NewLog("booking.cancel", s.logger)

	ok, err := s.bookings.UpdateStatus(ctx, b.ID, from, domain.BookingCancelled)
	if err != nil {
		return nil, s.fail(ctx, clog, "cancel", "update_booking_status", err)
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}
	clog.Record("update_booking_status", func(ctx context.Context) error {
		_, err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingCancelled, from)
		return err
	})

	if b.SlotID != nil {
		slotID := *b.SlotID
		if err := s.slots.Release(ctx, slotID); err != nil {
			return nil, s.fail(ctx, clog, "cancel", "release_slot", err)
		}
		clog.Record("release_slot", func(ctx context.Context) error {
			_, err := s.slots.Reserve(ctx, slotID)
			return err
		})
	}

	var agreementID *int64
	if b.IsSkillSwap {
		ag, err := s.swaps.GetByBookingID(ctx, b.ID)
		if err != nil {
			return nil, s.fail(ctx, clog, "cancel", "load_agreement", err)
		}
		swapFrom := domain.SwapStatusFor(from)
		if err := s.swaps.Transition(ctx, ag.ID, swapFrom, domain.SwapRejected); err != nil {
			return nil, s.fail(ctx, clog, "cancel", "update_agreement", err)
		}
		clog.Record("update_agreement", func(ctx context.Context) error {
			return s.swaps.Revert(ctx, ag.ID, domain.SwapRejected, swapFrom)
		})
		agreementID = &ag.ID
	}

	if err := s.notify(ctx, clog, notification.Transition{
		Booking:     b,
		From:        from,
		To:          domain.BookingCancelled,
		ActorID:     actorID,
		AgreementID: agreementID,
	}); err != nil {
		return nil, s.fail(ctx, clog, "cancel", "enqueue_notifications", err)
	}

	clog.Discard()
	return s.bookings.GetByID(ctx, b.ID)
}

// SetPaymentStatus records a payment-side change on a payment-tracked
// booking. Only the provider may record it: paid requires a confirmed
// booking, refunded a previously paid, non-terminal one. The booking
// status itself never moves here.
func (s *Service) SetPaymentStatus(ctx context.Context, bookingID, actorID int64, newStatus domain.PaymentStatus) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.IsSkillSwap {
		return nil, ErrValidation
	}
	if b.ProviderID != actorID {
		return nil, ErrForbidden
	}

	var from domain.PaymentStatus
	switch newStatus {
	case domain.PaymentPaid:
		if b.Status != domain.BookingConfirmed {
			return nil, ErrInvalidStatusTransition
		}
		from = domain.PaymentPending
	case domain.PaymentRefunded:
		if b.Status.IsTerminal() {
			return nil, ErrInvalidStatusTransition
		}
		from = domain.PaymentPaid
	default:
		return nil, ErrValidation
	}

	clog := saga.NewLog("booking.set_payment", s.logger)

	ok, err := s.bookings.UpdatePaymentStatus(ctx, b.ID, from, newStatus)
	if err != nil {
		return nil, s.fail(ctx, clog, "set_payment", "update_payment_status", err)
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}
	clog.Record("update_payment_status", func(ctx context.Context) error {
		_, err := s.bookings.UpdatePaymentStatus(ctx, b.ID, newStatus, from)
		return err
	})

	p := newStatus
	if err := s.notify(ctx, clog, notification.Transition{
		Booking: b,
		Payment: &p,
		ActorID: actorID,
	}); err != nil {
		return nil, s.fail(ctx, clog, "set_payment", "enqueue_notifications", err)
	}

	clog.Discard()
	return s.bookings.GetByID(ctx, b.ID)
}

// GetByID returns a booking to one of its participants.
func (s *Service) GetByID(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	b, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.HasParticipant(actorID) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListMyBookings(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.ListByParticipant(ctx, userID, limit, offset)
}

func (s *Service) ListOpenSlots(ctx context.Context, providerID int64, from, to time.Time) ([]domain.TimeSlot, error) {
	if providerID <= 0 || !to.After(from) {
		return nil, ErrValidation
	}
	return s.slots.ListOpenByProvider(ctx, providerID, from, to)
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// notify persists the fan-out of a transition, recording a discard for
// every record written so an unwinding transition leaves no feed entry.
func (s *Service) notify(ctx context.Context, clog *saga.Log, t notification.Transition) error {
	for _, n := range notification.Compute(t) {
		n := n
		if err := s.notifs.Enqueue(ctx, &n); err != nil {
			return err
		}
		clog.Record("enqueue_notification", func(ctx context.Context) error {
			return s.notifs.Discard(ctx, n.ID)
		})
	}
	return nil
}

// fail unwinds the compensation log and wraps the step failure. A clean
// unwind yields a retryable TransitionError; a failed unwind yields the
// fatal RollbackError and an operator-facing log line.
func (s *Service) fail(ctx context.Context, clog *saga.Log, op, step string, cause error) error {
	if uerr := clog.Unwind(ctx); uerr != nil {
		s.logger.Error("rollback failed, records need manual reconciliation",
			zap.String("op", op),
			zap.String("step", step),
			zap.String("transition_id", clog.ID()),
			zap.NamedError("cause", cause),
			zap.Error(uerr),
		)
		return &RollbackError{Op: op, Step: step, TransitionID: clog.ID(), Cause: cause, Unwind: uerr}
	}
	return &TransitionError{Op: op, Step: step, Err: cause}
}
