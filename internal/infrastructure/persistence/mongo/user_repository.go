package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillswap/internal/domain/user"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDoc struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty"`
	FName         string              `bson:"fname"`
	LName         string              `bson:"lname"`
	Email         string              `bson:"email"`
	Username      string              `bson:"username"`
	PasswordHash  string              `bson:"password_hash"`
	Bio           string              `bson:"bio"`
	Skills        []string            `bson:"skills"`
	Interests     []string            `bson:"interests"`
	Matches       []string            `bson:"matches"`
	Notifications []user.Notification `bson:"notifications"`
	CreatedAt     time.Time           `bson:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at"`
}

func (d userDoc) toDomain() user.User {
	return user.User{
		ID:            d.ID.Hex(),
		FName:         d.FName,
		LName:         d.LName,
		Email:         d.Email,
		Username:      d.Username,
		PasswordHash:  d.PasswordHash,
		Bio:           d.Bio,
		Skills:        orEmpty(d.Skills),
		Interests:     orEmpty(d.Interests),
		Matches:       orEmpty(d.Matches),
		Notifications: d.Notifications,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type UserRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll, now: time.Now}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	now := r.now().UTC()
	doc := userDoc{
		ID:            primitive.NewObjectID(),
		FName:         u.FName,
		LName:         u.LName,
		Email:         u.Email,
		Username:      u.Username,
		PasswordHash:  u.PasswordHash,
		Bio:           u.Bio,
		Skills:        orEmpty(u.Skills),
		Interests:     orEmpty(u.Interests),
		Matches:       orEmpty(u.Matches),
		Notifications: []user.Notification{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return user.User{}, translateUserErr(err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.User{}, user.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (user.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []string) ([]user.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []user.User{}, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	byID := make(map[string]user.User, len(docs))
	for _, d := range docs {
		byID[d.ID.Hex()] = d.toDomain()
	}
	out := make([]user.User, 0, len(docs))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.M{"username": username})
}

func (r *UserRepository) UsernameTakenByOther(ctx context.Context, username, exceptID string) (bool, error) {
	return r.exists(ctx, excluding(bson.M{"username": username}, exceptID))
}

func (r *UserRepository) EmailTakenByOther(ctx context.Context, email, exceptID string) (bool, error) {
	return r.exists(ctx, excluding(bson.M{"email": email}, exceptID))
}

func (r *UserRepository) exists(ctx context.Context, filter bson.M) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, ch user.ProfileChanges) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"fname":      ch.FName,
		"lname":      ch.LName,
		"email":      ch.Email,
		"username":   ch.Username,
		"bio":        ch.Bio,
		"updated_at": r.now().UTC(),
	}})
}

func (r *UserRepository) AddToSet(ctx context.Context, id string, field user.SkillField, ids []string) error {
	if field != user.FieldSkills && field != user.FieldInterests {
		return fmt.Errorf("unknown skill field: %d", field)
	}
	return r.updateByID(ctx, id, bson.M{
		"$addToSet": bson.M{field.String(): bson.M{"$each": ids}},
		"$set":      bson.M{"updated_at": r.now().UTC()},
	})
}

func (r *UserRepository) AddMatch(ctx context.Context, id, matchID string) error {
	return r.updateByID(ctx, id, bson.M{"$addToSet": bson.M{"matches": matchID}})
}

func (r *UserRepository) PushNotification(ctx context.Context, id string, n user.Notification) error {
	return r.updateByID(ctx, id, bson.M{"$push": bson.M{"notifications": n}})
}

func (r *UserRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user.ErrNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return translateUserErr(err)
	}
	if res.MatchedCount == 0 {
		return user.ErrNotFound
	}
	return nil
}

func excluding(filter bson.M, exceptID string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(exceptID); err == nil {
		filter["_id"] = bson.M{"$ne": oid}
	}
	return filter
}

// translateUserErr maps unique-index violations to domain errors. The
// index names are the ones created by mongodb.Client.EnsureIndexes.
func translateUserErr(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "users_email_key"):
		return fmt.Errorf("%w: %v", user.ErrDuplicateEmail, err)
	case strings.Contains(msg, "users_username_key"):
		return fmt.Errorf("%w: %v", user.ErrDuplicateUsername, err)
	default:
		return err
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
