package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"slotwise/database"
	"slotwise/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl  *mongo.Collection
	customerColl *mongo.Collection
}

func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("slotwise")
	return &MongoBookingRepo{
		bookingColl:  db.Collection("bookings"),
		customerColl: db.Collection("customers"),
	}
}

func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if _, err := repo.bookingColl.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("booking %s not found: %w", bookingID, err)
	}
	return &booking, nil
}

// ListInWindow returns bookings whose interval intersects [from, to).
func (repo *MongoBookingRepo) ListInWindow(ctx context.Context, providerID, serviceID string, from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"start_at":    bson.M{"$lt": to},
		"end_at":      bson.M{"$gt": from},
	}
	if serviceID != "" {
		filter["service_id"] = serviceID
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus, payMode models.PayMode) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status, "updated_at": time.Now().UTC()}
	if payMode != "" {
		set["pay_mode"] = payMode
	}
	res, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *MongoBookingRepo) UpdateTimes(ctx context.Context, bookingID string, startAt, endAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"start_at": startAt, "end_at": endAt, "updated_at": time.Now().UTC()}
	res, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error rescheduling booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repo *MongoBookingRepo) AppendNote(ctx context.Context, bookingID, note string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		return fmt.Errorf("booking %s not found: %w", bookingID, err)
	}

	notes := note
	if booking.Notes != "" {
		notes = booking.Notes + "\n\n" + note
	}
	_, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID},
		bson.M{"$set": bson.M{"notes": notes, "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("error appending note to booking %s: %w", bookingID, err)
	}
	return nil
}

// CountInWindow counts bookings in a status whose start falls in
// [startFrom, startTo). Zero bounds are open ends.
func (repo *MongoBookingRepo) CountInWindow(ctx context.Context, providerID string, status models.BookingStatus, startFrom, startTo time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID, "status": status}
	startRange := bson.M{}
	if !startFrom.IsZero() {
		startRange["$gte"] = startFrom
	}
	if !startTo.IsZero() {
		startRange["$lt"] = startTo
	}
	if len(startRange) > 0 {
		filter["start_at"] = startRange
	}

	count, err := repo.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting bookings for provider %s: %w", providerID, err)
	}
	return count, nil
}

// CountCreatedSince counts bookings in a status created at or after since.
func (repo *MongoBookingRepo) CountCreatedSince(ctx context.Context, providerID string, status models.BookingStatus, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"status":      status,
		"created_at":  bson.M{"$gte": since},
	}
	count, err := repo.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error counting recent bookings for provider %s: %w", providerID, err)
	}
	return count, nil
}

func (repo *MongoBookingRepo) GetCustomerByID(ctx context.Context, customerID string) (*models.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer models.Customer
	if err := repo.customerColl.FindOne(ctx, bson.M{"id": customerID}).Decode(&customer); err != nil {
		return nil, fmt.Errorf("customer %s not found: %w", customerID, err)
	}
	return &customer, nil
}

// UpsertCustomer matches on email so repeat public bookings reuse the
// same customer record.
func (repo *MongoBookingRepo) UpsertCustomer(ctx context.Context, customer *models.Customer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if customer.Email != "" {
		var existing models.Customer
		err := repo.customerColl.FindOne(ctx, bson.M{"email": customer.Email}).Decode(&existing)
		if err == nil {
			customer.ID = existing.ID
			_, err = repo.customerColl.UpdateOne(ctx, bson.M{"id": existing.ID}, bson.M{"$set": customer})
			if err != nil {
				return fmt.Errorf("error updating customer: %w", err)
			}
			return nil
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("error looking up customer: %w", err)
		}
	}

	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if _, err := repo.customerColl.InsertOne(ctx, customer); err != nil {
		return fmt.Errorf("error creating customer: %w", err)
	}
	return nil
}
