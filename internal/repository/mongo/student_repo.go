package mongo

import (
	"context"
	"errors"

	"alcyxob/trainerpro/internal/domain"
	"alcyxob/trainerpro/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const studentCollectionName = "students"

// mongoStudentRepository implements repository.StudentRepository.
// Each student is one document; schedule and weekly plan are embedded.
type mongoStudentRepository struct {
	collection *mongo.Collection
}

func NewMongoStudentRepository(db *mongo.Database) repository.StudentRepository {
	return &mongoStudentRepository{
		collection: db.Collection(studentCollectionName),
	}
}

func (r *mongoStudentRepository) List(ctx context.Context) ([]domain.Student, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	students := []domain.Student{}
	if err = cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	for i := range students {
		fillEmptyCollections(&students[i])
	}
	return students, nil
}

func (r *mongoStudentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	var student domain.Student
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	fillEmptyCollections(&student)
	return &student, nil
}

func (r *mongoStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	_, err := r.collection.InsertOne(ctx, student)
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicate
	}
	return err
}

// Update replaces the stored document; a single-document replace is atomic,
// so readers see either the old or the new record.
func (r *mongoStudentRepository) Update(ctx context.Context, student *domain.Student) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": student.ID}, student)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoStudentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// fillEmptyCollections restores empty (not nil) slices lost in BSON null round trips.
func fillEmptyCollections(s *domain.Student) {
	if s.WeeklyPlan == nil {
		s.WeeklyPlan = domain.WeeklyPlan{}
	}
	if s.Schedule.Days == nil {
		s.Schedule.Days = []domain.Weekday{}
	}
	for i := range s.WeeklyPlan {
		if s.WeeklyPlan[i].Exercises == nil {
			s.WeeklyPlan[i].Exercises = []domain.Exercise{}
		}
	}
}

func ensureStudentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{
			// video uploads look an exercise up by id across all plans
			Keys:    bson.D{{Key: "weeklyPlan.exercises.id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
