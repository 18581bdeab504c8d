package application

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/internal/domain/query"
	"github.com/campdir/campdir-api/internal/domain/repository"
	"github.com/campdir/campdir-api/internal/infrastructure/search"
	"github.com/campdir/campdir-api/internal/infrastructure/storage"
	"github.com/campdir/campdir-api/pkg/apperr"
	"github.com/campdir/campdir-api/pkg/geocode"
)

type BootcampService struct {
	Bootcamps     repository.BootcampRepository
	Geocoder      geocode.Geocoder
	Photos        storage.Store
	Index         *search.BootcampIndex
	Logger        *logrus.Logger
	MaxFileUpload int64
}

func NewBootcampService(repo repository.BootcampRepository, geo geocode.Geocoder, photos storage.Store, index *search.BootcampIndex, logger *logrus.Logger, maxFileUpload int64) *BootcampService {
	return &BootcampService{
		Bootcamps:     repo,
		Geocoder:      geo,
		Photos:        photos,
		Index:         index,
		Logger:        logger,
		MaxFileUpload: maxFileUpload,
	}
}

func (s *BootcampService) List(ctx context.Context, spec query.Spec) ([]map[string]any, int, error) {
	return s.Bootcamps.List(ctx, spec, true)
}

func (s *BootcampService) Get(ctx context.Context, id string) (*entity.Bootcamp, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Bootcamp", id)
		}
		return nil, err
	}
	return b, nil
}

type BootcampInput struct {
	Name          string
	Description   string
	Website       string
	Phone         string
	Email         string
	Address       string
	Careers       []string
	Housing       bool
	JobAssistance bool
	JobGuarantee  bool
	AcceptGI      bool
}

// Create publishes a new bootcamp for the caller. A non-admin publisher may
// only hold one published bootcamp; the check is read-then-write with no
// transactional guarantee.
func (s *BootcampService) Create(ctx context.Context, caller *entity.User, in BootcampInput) (*entity.Bootcamp, error) {
	if !caller.IsAdmin() {
		has, err := s.Bootcamps.OwnerHasBootcamp(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		if has {
			return nil, apperr.BadRequest("User with ID %s has already published a bootcamp", caller.ID)
		}
	}

	loc, err := s.Geocoder.Geocode(ctx, in.Address)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("address", in.Address).Error("geocoding failed")
		}
		return nil, apperr.New(http.StatusInternalServerError, "Address could not be geocoded")
	}

	b := &entity.Bootcamp{
		UserID:        caller.ID,
		Name:          in.Name,
		Slug:          entity.Slugify(in.Name),
		Description:   in.Description,
		Website:       in.Website,
		Phone:         in.Phone,
		Email:         in.Email,
		Address:       in.Address,
		Latitude:      loc.Latitude,
		Longitude:     loc.Longitude,
		Careers:       in.Careers,
		Housing:       in.Housing,
		JobAssistance: in.JobAssistance,
		JobGuarantee:  in.JobGuarantee,
		AcceptGI:      in.AcceptGI,
	}
	if err := s.Bootcamps.Create(ctx, b); err != nil {
		return nil, err
	}
	s.Index.Upsert(ctx, b)
	return b, nil
}

type BootcampUpdate struct {
	Name          *string
	Description   *string
	Website       *string
	Phone         *string
	Email         *string
	Address       *string
	Careers       []string
	Housing       *bool
	JobAssistance *bool
	JobGuarantee  *bool
	AcceptGI      *bool
}

func (s *BootcampService) Update(ctx context.Context, caller *entity.User, id string, in BootcampUpdate) (*entity.Bootcamp, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanMutate(caller, b.UserID) {
		return nil, apperr.Unauthorized("User %s is not authorized to update bootcamp %s", caller.ID, id)
	}

	if in.Name != nil {
		b.Name = *in.Name
		b.Slug = entity.Slugify(b.Name)
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Website != nil {
		b.Website = *in.Website
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	if in.Email != nil {
		b.Email = *in.Email
	}
	if in.Careers != nil {
		b.Careers = in.Careers
	}
	if in.Housing != nil {
		b.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		b.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		b.JobGuarantee = *in.JobGuarantee
	}
	if in.AcceptGI != nil {
		b.AcceptGI = *in.AcceptGI
	}
	if in.Address != nil && *in.Address != b.Address {
		loc, err := s.Geocoder.Geocode(ctx, *in.Address)
		if err != nil {
			return nil, apperr.New(http.StatusInternalServerError, "Address could not be geocoded")
		}
		b.Address = *in.Address
		b.Latitude = loc.Latitude
		b.Longitude = loc.Longitude
	}

	if err := s.Bootcamps.Update(ctx, b); err != nil {
		return nil, err
	}
	s.Index.Upsert(ctx, b)
	return b, nil
}

func (s *BootcampService) Delete(ctx context.Context, caller *entity.User, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !CanMutate(caller, b.UserID) {
		return apperr.Unauthorized("User %s is not authorized to delete bootcamp %s", caller.ID, id)
	}
	if err := s.Bootcamps.Delete(ctx, id); err != nil {
		return err
	}
	s.Index.Remove(ctx, id)
	return nil
}

// WithinRadius geocodes the zipcode and returns every bootcamp within the
// given distance in miles.
func (s *BootcampService) WithinRadius(ctx context.Context, zipcode string, miles float64) ([]*entity.Bootcamp, error) {
	loc, err := s.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, apperr.New(http.StatusInternalServerError, "Address could not be geocoded")
	}
	list, err := s.Bootcamps.WithinRadius(ctx, loc.Latitude, loc.Longitude, miles)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Bootcamp{}
	}
	return list, nil
}

// UploadPhoto validates the upload and stores it under photo_<id><ext>,
// then records the filename on the bootcamp.
func (s *BootcampService) UploadPhoto(ctx context.Context, caller *entity.User, id string, file *multipart.FileHeader) (string, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !CanMutate(caller, b.UserID) {
		return "", apperr.Unauthorized("User %s is not authorized to update bootcamp %s", caller.ID, id)
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image") {
		return "", apperr.BadRequest("Please upload an image file")
	}
	if file.Size > s.MaxFileUpload {
		return "", apperr.BadRequest("Please upload an image less than %d bytes", s.MaxFileUpload)
	}

	name := "photo_" + b.ID + strings.ToLower(filepath.Ext(file.Filename))
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	if _, err := s.Photos.Save(ctx, name, contentType, src); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("bootcamp_id", id).Error("photo upload failed")
		}
		return "", apperr.New(http.StatusInternalServerError, "Problem with file upload")
	}
	if err := s.Bootcamps.SetPhoto(ctx, id, name); err != nil {
		return "", err
	}
	b.Photo = name
	s.Index.Upsert(ctx, b)
	return name, nil
}

// Search queries the text index; it returns an empty slice when the index is
// not configured.
func (s *BootcampService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	return s.Index.Search(ctx, q, size)
}
