package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edumarket/course-api/internal/core/domain"
)

const collectionCourses = "courses"

// CourseRepository implements ports.CourseRepository on the courses collection.
type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

type mongoCourse struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	Slug                string             `bson:"slug"`
	Name                string             `bson:"name"`
	Category            string             `bson:"category,omitempty"`
	Image               string             `bson:"image,omitempty"`
	Type                string             `bson:"type"`
	Rating              float64            `bson:"rating"`
	Learners            int                `bson:"learners"`
	Level               string             `bson:"level,omitempty"`
	Duration            string             `bson:"duration,omitempty"`
	Price               float64            `bson:"price"`
	CourseDescription   string             `bson:"course_description,omitempty"`
	AboutTheCourse      string             `bson:"about_the_course,omitempty"`
	Instructor          primitive.ObjectID `bson:"instructor"`
	InstructorName      string             `bson:"instructor_name,omitempty"`
	InstructorImage     string             `bson:"instructor_image,omitempty"`
	SkillsGained        []string           `bson:"skills_gained"`
	Lectures            int                `bson:"lectures"`
	StudentsEnrolled    int                `bson:"students_enrolled"`
	Language            string             `bson:"language,omitempty"`
	CertificateProvided bool               `bson:"certificate_provided"`
	CourseContent       []domain.Module    `bson:"course_content"`
	CreatedAt           time.Time          `bson:"created_at"`
	UpdatedAt           time.Time          `bson:"updated_at"`
}

// Create inserts a new course document.
func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	doc, err := fromDomainCourse(c)
	if err != nil {
		return nil, err
	}
	doc.ID = primitive.NilObjectID

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("insert course: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert course: unexpected id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toDomain(), nil
}

// FindByID treats a malformed id like a missing course.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *CourseRepository) FindBySlug(ctx context.Context, slug string) (*domain.Course, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Course, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Course{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
}

// List returns every course, newest first.
func (r *CourseRepository) List(ctx context.Context) ([]*domain.Course, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// Update replaces the stored document with c. The caller is responsible for
// having checked ownership; instructor is written as given.
func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) (*domain.Course, error) {
	doc, err := fromDomainCourse(c)
	if err != nil {
		return nil, err
	}
	if doc.ID.IsZero() {
		return nil, domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrCourseNotFound
	}
	return doc.toDomain(), nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// EnsureIndexes creates the unique slug index and the instructor lookup index.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: uniqueIndex()},
		{Keys: bson.D{{Key: "instructor", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *CourseRepository) findOne(ctx context.Context, filter bson.M) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCourse
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CourseRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cur, err := r.col.Find(ctx, filter, findOpts...)
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}

	var docs []mongoCourse
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	out := make([]*domain.Course, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func fromDomainCourse(c *domain.Course) (*mongoCourse, error) {
	instructor, err := primitive.ObjectIDFromHex(c.InstructorID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid instructor id", domain.ErrValidation)
	}

	doc := &mongoCourse{
		Slug:                c.Slug,
		Name:                c.Name,
		Category:            c.Category,
		Image:               c.Image,
		Type:                string(c.Type),
		Rating:              c.Rating,
		Learners:            c.Learners,
		Level:               c.Level,
		Duration:            c.Duration,
		Price:               c.Price,
		CourseDescription:   c.CourseDescription,
		AboutTheCourse:      c.AboutTheCourse,
		Instructor:          instructor,
		InstructorName:      c.InstructorName,
		InstructorImage:     c.InstructorImage,
		SkillsGained:        c.SkillsGained,
		Lectures:            c.Lectures,
		StudentsEnrolled:    c.StudentsEnrolled,
		Language:            c.Language,
		CertificateProvided: c.CertificateProvided,
		CourseContent:       c.CourseContent,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
	if doc.SkillsGained == nil {
		doc.SkillsGained = []string{}
	}
	if doc.CourseContent == nil {
		doc.CourseContent = []domain.Module{}
	}
	if c.ID != "" {
		oid, err := primitive.ObjectIDFromHex(c.ID)
		if err != nil {
			return nil, domain.ErrCourseNotFound
		}
		doc.ID = oid
	}
	return doc, nil
}

func (mc *mongoCourse) toDomain() *domain.Course {
	return &domain.Course{
		ID:                  mc.ID.Hex(),
		Slug:                mc.Slug,
		Name:                mc.Name,
		Category:            mc.Category,
		Image:               mc.Image,
		Type:                domain.CourseType(mc.Type),
		Rating:              mc.Rating,
		Learners:            mc.Learners,
		Level:               mc.Level,
		Duration:            mc.Duration,
		Price:               mc.Price,
		CourseDescription:   mc.CourseDescription,
		AboutTheCourse:      mc.AboutTheCourse,
		InstructorID:        mc.Instructor.Hex(),
		InstructorName:      mc.InstructorName,
		InstructorImage:     mc.InstructorImage,
		SkillsGained:        mc.SkillsGained,
		Lectures:            mc.Lectures,
		StudentsEnrolled:    mc.StudentsEnrolled,
		Language:            mc.Language,
		CertificateProvided: mc.CertificateProvided,
		CourseContent:       mc.CourseContent,
		CreatedAt:           mc.CreatedAt.UTC(),
		UpdatedAt:           mc.UpdatedAt.UTC(),
	}
}
