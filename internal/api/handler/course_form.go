package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edumarket/course-api/internal/core/domain"
	"github.com/edumarket/course-api/internal/core/ports"
)

const (
	fieldImage           = "image"
	fieldInstructorImage = "instructor_image"
)

// boundCourse is a decoded course payload plus any uploaded files. Close must
// be called once the service call has returned.
type boundCourse struct {
	req    courseRequest
	images ports.CourseImages
	files  []io.Closer
}

func (b *boundCourse) Close() {
	for _, f := range b.files {
		_ = f.Close()
	}
}

// uploadedFields lists the form fields that carried a file.
func (b *boundCourse) uploadedFields() []string {
	var fields []string
	if b.images.Image != nil {
		fields = append(fields, fieldImage)
	}
	if b.images.InstructorImage != nil {
		fields = append(fields, fieldInstructorImage)
	}
	return fields
}

// bindCourse decodes a course from either a JSON body or a multipart form.
// In multipart forms skills_gained and course_content are JSON strings.
func bindCourse(c echo.Context) (*boundCourse, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		b := &boundCourse{}
		if err := (&echo.DefaultBinder{}).BindBody(c, &b.req); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
		}
		return b, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return nil, he
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form").SetInternal(err)
	}

	b := &boundCourse{}
	if err := decodeForm(form.Value, &b.req); err != nil {
		return nil, err
	}

	if b.images.Image, err = b.open(form.File, fieldImage); err != nil {
		b.Close()
		return nil, err
	}
	if b.images.InstructorImage, err = b.open(form.File, fieldInstructorImage); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (b *boundCourse) open(files map[string][]*multipart.FileHeader, field string) (*ports.ImageUpload, error) {
	headers := files[field]
	if len(headers) == 0 {
		return nil, nil
	}
	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s upload: %w", field, err)
	}
	b.files = append(b.files, f)
	return &ports.ImageUpload{Filename: fh.Filename, Content: f}, nil
}

func decodeForm(values map[string][]string, req *courseRequest) error {
	d := formDecoder{values: values}

	req.Slug = d.str("slug")
	req.Name = d.str("name")
	req.Category = d.str("category")
	req.Image = d.str("image")
	if t := d.str("type"); t != nil {
		ct := domain.CourseType(*t)
		req.Type = &ct
	}
	req.Rating = d.floatVal("rating")
	req.Learners = d.intVal("learners")
	req.Level = d.str("level")
	req.Duration = d.str("duration")
	req.Price = d.floatVal("price")
	req.CourseDescription = d.str("course_description")
	req.AboutTheCourse = d.str("about_the_course")
	req.InstructorName = d.str("instructor_name")
	req.InstructorImage = d.str("instructor_image")
	req.Lectures = d.intVal("lectures")
	req.StudentsEnrolled = d.intVal("students_enrolled")
	req.Language = d.str("language")
	req.CertificateProvided = d.boolVal("certificate_provided")
	d.jsonVal("skills_gained", &req.SkillsGained)
	d.jsonVal("course_content", &req.CourseContent)

	return d.err
}

// formDecoder reads typed values from multipart fields, keeping the first error.
type formDecoder struct {
	values map[string][]string
	err    error
}

func (d *formDecoder) raw(key string) (string, bool) {
	v, ok := d.values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return v[0], true
}

func (d *formDecoder) fail(key string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s: %v", domain.ErrValidation, key, err)
	}
}

func (d *formDecoder) str(key string) *string {
	v, ok := d.raw(key)
	if !ok {
		return nil
	}
	return &v
}

func (d *formDecoder) floatVal(key string) *float64 {
	v, ok := d.raw(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		d.fail(key, err)
		return nil
	}
	return &f
}

func (d *formDecoder) intVal(key string) *int {
	v, ok := d.raw(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		d.fail(key, err)
		return nil
	}
	return &n
}

func (d *formDecoder) boolVal(key string) *bool {
	v, ok := d.raw(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		d.fail(key, err)
		return nil
	}
	return &b
}

func (d *formDecoder) jsonVal(key string, dst any) {
	v, ok := d.raw(key)
	if !ok || v == "" {
		return
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		d.fail(key, err)
	}
}
