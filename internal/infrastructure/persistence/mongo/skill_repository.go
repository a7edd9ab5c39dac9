package mongo

import (
	"context"
	"fmt"
	"time"

	"skillswap/internal/domain/skill"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type skillDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Category  string             `bson:"category"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d skillDoc) toDomain() skill.Skill {
	return skill.Skill{ID: d.ID.Hex(), Name: d.Name, Category: d.Category, CreatedAt: d.CreatedAt}
}

type SkillRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewSkillRepository(coll *mongo.Collection) *SkillRepository {
	return &SkillRepository{coll: coll, now: time.Now}
}

func (r *SkillRepository) GetAll(ctx context.Context) ([]skill.Skill, error) {
	return r.find(ctx, bson.M{})
}

func (r *SkillRepository) GetByNames(ctx context.Context, names []string) ([]skill.Skill, error) {
	if len(names) == 0 {
		return []skill.Skill{}, nil
	}
	return r.find(ctx, bson.M{"name": bson.M{"$in": names}})
}

func (r *SkillRepository) find(ctx context.Context, filter bson.M) ([]skill.Skill, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []skillDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]skill.Skill, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *SkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	doc := skillDoc{
		ID:        primitive.NewObjectID(),
		Name:      s.Name,
		Category:  s.Category,
		CreatedAt: r.now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return skill.Skill{}, fmt.Errorf("%w: %v", skill.ErrDuplicateName, err)
		}
		return skill.Skill{}, err
	}
	return doc.toDomain(), nil
}

func (r *SkillRepository) EnsureSkills(ctx context.Context, items []skill.Skill) (int, error) {
	added := 0
	for _, it := range items {
		res, err := r.coll.UpdateOne(ctx,
			bson.M{"name": it.Name},
			bson.M{"$setOnInsert": bson.M{
				"name":       it.Name,
				"category":   it.Category,
				"created_at": r.now().UTC(),
			}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return added, fmt.Errorf("ensure skill %q: %w", it.Name, err)
		}
		added += int(res.UpsertedCount)
	}
	return added, nil
}
