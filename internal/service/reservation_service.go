package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/hoteldesk/reservation-service/config"
	"github.com/hoteldesk/reservation-service/internal/events"
	"github.com/hoteldesk/reservation-service/internal/models"
	"github.com/hoteldesk/reservation-service/internal/repository"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrRoomTypeNotFound   = errors.New("room type not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrNoAvailability     = errors.New("no rooms of this type are available for the requested dates")
	ErrConcurrentConflict = errors.New("booking conflicted with a concurrent request, please retry")
	ErrInvalidStay        = errors.New("invalid stay dates")
	ErrInvalidContact     = errors.New("invalid contact")
	ErrInvalidGuestName   = errors.New("guest name is required")
)

// maxBookAttempts bounds automatic retries on serialization/deadlock aborts.
const maxBookAttempts = 3

type BookingRequest struct {
	GuestName string
	Contact   string
	RoomType  string
	CheckIn   string
	CheckOut  string
}

type AvailabilityResult struct {
	RoomType  *models.RoomType
	FreeUnits int64
}

type QuoteResult struct {
	RoomType    *models.RoomType
	Nights      int
	TotalAmount float64
}

// EventPublisher is satisfied by rabbitmq.Publisher. Publishing is best-effort
// and happens strictly after commit.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type ReservationService interface {
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)
	CheckAvailability(ctx context.Context, roomType, checkIn, checkOut string) (*AvailabilityResult, error)
	Quote(ctx context.Context, roomType, checkIn, checkOut string) (*QuoteResult, error)
	Book(ctx context.Context, req BookingRequest) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID uint, contact string) (*models.Booking, error)
	GetBooking(ctx context.Context, bookingID uint, contact string) (*models.Booking, error)
}

type Options struct {
	ContactKeyKind   config.ContactKeyKind
	AllowPastCheckIn bool
}

type reservationService struct {
	roomTypeRepo repository.RoomTypeRepository
	roomRepo     repository.RoomRepository
	guestRepo    repository.GuestRepository
	bookingRepo  repository.BookingRepository
	publisher    EventPublisher
	opts         Options
}

func NewReservationService(
	roomTypeRepo repository.RoomTypeRepository,
	roomRepo repository.RoomRepository,
	guestRepo repository.GuestRepository,
	bookingRepo repository.BookingRepository,
	publisher EventPublisher,
	opts Options,
) ReservationService {
	if opts.ContactKeyKind == "" {
		opts.ContactKeyKind = config.ContactKeyEmail
	}
	return &reservationService{
		roomTypeRepo: roomTypeRepo,
		roomRepo:     roomRepo,
		guestRepo:    guestRepo,
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		opts:         opts,
	}
}

func (s *reservationService) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	return s.roomTypeRepo.ListAll(ctx)
}

func (s *reservationService) CheckAvailability(ctx context.Context, roomType, checkIn, checkOut string) (*AvailabilityResult, error) {
	stay, err := s.parseStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	rt, err := s.resolveRoomType(ctx, roomType)
	if err != nil {
		return nil, err
	}

	// Advisory read: a concurrent booking may consume this before the caller
	// acts on it. Book recomputes inside its own transaction.
	count, err := s.roomRepo.CountFreeRooms(ctx, nil, rt.ID, stay)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{RoomType: rt, FreeUnits: count}, nil
}

func (s *reservationService) Quote(ctx context.Context, roomType, checkIn, checkOut string) (*QuoteResult, error) {
	stay, err := s.parseStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	rt, err := s.resolveRoomType(ctx, roomType)
	if err != nil {
		return nil, err
	}

	nights := stay.Nights()
	return &QuoteResult{
		RoomType:    rt,
		Nights:      nights,
		TotalAmount: float64(nights) * rt.BasePrice,
	}, nil
}

func (s *reservationService) Book(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	stay, err := s.parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.GuestName) == "" {
		return nil, ErrInvalidGuestName
	}
	if err := s.validateContact(req.Contact); err != nil {
		return nil, err
	}

	rt, err := s.resolveRoomType(ctx, req.RoomType)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxBookAttempts; attempt++ {
		booking, err := s.bookOnce(ctx, req, rt.ID, stay)
		if err == nil {
			s.publishConfirmed(booking, req)
			return booking, nil
		}
		if !isRetryableConflict(err) {
			return nil, err
		}
		lastErr = err
		log.Printf("[Reservation] booking attempt %d/%d aborted on conflict: %v", attempt, maxBookAttempts, err)
	}

	return nil, fmt.Errorf("%w: %v", ErrConcurrentConflict, lastErr)
}

// bookOnce runs the whole allocation as one transaction. The room type row is
// locked first; everything after the lock sees a state no concurrent allocator
// for the same type can be mutating.
func (s *reservationService) bookOnce(ctx context.Context, req BookingRequest, roomTypeID uint, stay models.Stay) (*models.Booking, error) {
	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the room type row — serializes allocators for this type
		rt, err := s.roomTypeRepo.FindByIDForUpdate(ctx, tx, roomTypeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomTypeNotFound
			}
			return err
		}

		// 2. Recompute free rooms inside the transaction, lowest ID first
		rooms, err := s.roomRepo.FindFreeRooms(ctx, tx, rt.ID, stay)
		if err != nil {
			return err
		}
		if len(rooms) == 0 {
			return ErrNoAvailability
		}
		room := rooms[0]

		// 3. Upsert the guest by contact key
		guest := &models.Guest{
			Contact:  strings.TrimSpace(req.Contact),
			FullName: strings.TrimSpace(req.GuestName),
		}
		if err := s.guestRepo.Upsert(ctx, tx, guest); err != nil {
			return err
		}

		// 4. Price at creation time; never recomputed later
		nights := stay.Nights()
		booking := &models.Booking{
			GuestID:     guest.ID,
			RoomTypeID:  rt.ID,
			CheckIn:     stay.CheckIn,
			CheckOut:    stay.CheckOut,
			TotalAmount: float64(nights) * rt.BasePrice,
			Status:      models.StatusConfirmed,
		}

		// 5. Booking and assignment commit together or not at all
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		if err := s.bookingRepo.CreateAssignment(ctx, tx, &models.RoomAssignment{
			BookingID: booking.ID,
			RoomID:    room.ID,
		}); err != nil {
			return err
		}

		result = booking
		return nil
	})

	return result, err
}

func (s *reservationService) Cancel(ctx context.Context, bookingID uint, contact string) (*models.Booking, error) {
	if err := s.validateContact(contact); err != nil {
		return nil, err
	}

	var result *models.Booking

	err := s.bookingRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByIDAndContactForUpdate(ctx, tx, bookingID, strings.TrimSpace(contact))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Wrong contact and missing booking look the same on purpose.
				return ErrBookingNotFound
			}
			return err
		}

		if booking.Status == models.StatusCancelled {
			return ErrAlreadyCancelled
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, models.StatusCancelled); err != nil {
			return err
		}

		booking.Status = models.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(events.RKBookingCancelled, events.BookingCancelled{
			BookingID: result.ID,
			Contact:   strings.TrimSpace(contact),
		}); err != nil {
			log.Printf("[Reservation] failed to publish cancellation event for booking %d: %v", result.ID, err)
		}
	}

	return result, nil
}

func (s *reservationService) GetBooking(ctx context.Context, bookingID uint, contact string) (*models.Booking, error) {
	if err := s.validateContact(contact); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.FindByIDAndContact(ctx, nil, bookingID, strings.TrimSpace(contact))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *reservationService) resolveRoomType(ctx context.Context, label string) (*models.RoomType, error) {
	types, err := s.roomTypeRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	rt := MatchRoomType(types, label)
	if rt == nil {
		return nil, ErrRoomTypeNotFound
	}
	return rt, nil
}

func (s *reservationService) parseStay(checkIn, checkOut string) (models.Stay, error) {
	stay, err := models.ParseStay(checkIn, checkOut)
	if err != nil {
		return models.Stay{}, fmt.Errorf("%w: %v", ErrInvalidStay, err)
	}
	if !s.opts.AllowPastCheckIn {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if stay.CheckIn.Before(today) {
			return models.Stay{}, fmt.Errorf("%w: check-in date is in the past", ErrInvalidStay)
		}
	}
	return stay, nil
}

func (s *reservationService) validateContact(contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return fmt.Errorf("%w: contact is required", ErrInvalidContact)
	}

	switch s.opts.ContactKeyKind {
	case config.ContactKeyPhone:
		digits := 0
		for i, r := range contact {
			switch {
			case unicode.IsDigit(r):
				digits++
			case r == '+' && i == 0:
			case r == ' ' || r == '-':
			default:
				return fmt.Errorf("%w: not a valid phone number", ErrInvalidContact)
			}
		}
		if digits < 7 {
			return fmt.Errorf("%w: not a valid phone number", ErrInvalidContact)
		}
	default: // email
		at := strings.Index(contact, "@")
		if at < 1 || at == len(contact)-1 || strings.ContainsAny(contact, " \t") {
			return fmt.Errorf("%w: not a valid email address", ErrInvalidContact)
		}
	}
	return nil
}

func (s *reservationService) publishConfirmed(booking *models.Booking, req BookingRequest) {
	if s.publisher == nil {
		return
	}
	stay := models.Stay{CheckIn: booking.CheckIn, CheckOut: booking.CheckOut}
	err := s.publisher.Publish(events.RKBookingConfirmed, events.BookingConfirmed{
		BookingID:   booking.ID,
		Contact:     strings.TrimSpace(req.Contact),
		GuestName:   strings.TrimSpace(req.GuestName),
		RoomType:    req.RoomType,
		CheckIn:     booking.CheckIn.Format(models.DateLayout),
		CheckOut:    booking.CheckOut.Format(models.DateLayout),
		Nights:      stay.Nights(),
		TotalAmount: booking.TotalAmount,
	})
	if err != nil {
		log.Printf("[Reservation] failed to publish confirmation event for booking %d: %v", booking.ID, err)
	}
}

// isRetryableConflict reports whether the error is a Postgres serialization
// failure (40001) or deadlock (40P01), both safe to retry from scratch.
func isRetryableConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
