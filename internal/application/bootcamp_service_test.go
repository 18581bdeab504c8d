package application

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campdir/campdir-api/internal/domain/entity"
	"github.com/campdir/campdir-api/pkg/geocode"
)

func bootcampSvc(repo *stubBootcamps, geo *stubGeocoder, store *stubStore) *BootcampService {
	if geo == nil {
		geo = &stubGeocoder{loc: geocode.Location{Latitude: 42.35, Longitude: -71.1}}
	}
	if store == nil {
		store = newStubStore()
	}
	return NewBootcampService(repo, geo, store, nil, nil, 1000000)
}

func TestBootcampCreate(t *testing.T) {
	publisher := &entity.User{ID: "u1", Role: entity.RolePublisher}
	admin := &entity.User{ID: "u2", Role: entity.RoleAdmin}
	input := BootcampInput{Name: "Devworks Bootcamp", Description: "d", Address: "233 Bay State Rd"}

	t.Run("fills slug owner and coordinates", func(t *testing.T) {
		repo := newStubBootcamps()
		b, err := bootcampSvc(repo, nil, nil).Create(context.Background(), publisher, input)
		require.NoError(t, err)
		assert.Equal(t, "devworks-bootcamp", b.Slug)
		assert.Equal(t, "u1", b.UserID)
		assert.InDelta(t, 42.35, b.Latitude, 1e-9)
		assert.Len(t, repo.created, 1)
	})

	t.Run("publisher may only hold one bootcamp", func(t *testing.T) {
		repo := newStubBootcamps()
		repo.ownerHas = true
		_, err := bootcampSvc(repo, nil, nil).Create(context.Background(), publisher, input)
		requireAppError(t, err, http.StatusBadRequest, "User with ID u1 has already published a bootcamp")
		assert.Empty(t, repo.created)
	})

	t.Run("admin is exempt from the one bootcamp rule", func(t *testing.T) {
		repo := newStubBootcamps()
		repo.ownerHas = true
		_, err := bootcampSvc(repo, nil, nil).Create(context.Background(), admin, input)
		require.NoError(t, err)
	})

	t.Run("geocoding failure", func(t *testing.T) {
		repo := newStubBootcamps()
		geo := &stubGeocoder{err: assert.AnError}
		_, err := bootcampSvc(repo, geo, nil).Create(context.Background(), publisher, input)
		requireAppError(t, err, http.StatusInternalServerError, "Address could not be geocoded")
		assert.Empty(t, repo.created)
	})
}

func TestBootcampUpdate(t *testing.T) {
	owner := &entity.User{ID: "u1", Role: entity.RolePublisher}
	stranger := &entity.User{ID: "u2", Role: entity.RolePublisher}
	admin := &entity.User{ID: "u9", Role: entity.RoleAdmin}

	newRepo := func() *stubBootcamps {
		return newStubBootcamps(&entity.Bootcamp{ID: "b1", UserID: "u1", Name: "Old", Slug: "old", Address: "addr"})
	}
	name := "New Name"

	t.Run("owner updates and slug follows the name", func(t *testing.T) {
		repo := newRepo()
		b, err := bootcampSvc(repo, nil, nil).Update(context.Background(), owner, "b1", BootcampUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "new-name", b.Slug)
		assert.Len(t, repo.updated, 1)
	})

	t.Run("non-owner is rejected with no state change", func(t *testing.T) {
		repo := newRepo()
		_, err := bootcampSvc(repo, nil, nil).Update(context.Background(), stranger, "b1", BootcampUpdate{Name: &name})
		requireAppError(t, err, http.StatusUnauthorized, "User u2 is not authorized to update bootcamp b1")
		assert.Empty(t, repo.updated)
	})

	t.Run("admin may update any bootcamp", func(t *testing.T) {
		repo := newRepo()
		_, err := bootcampSvc(repo, nil, nil).Update(context.Background(), admin, "b1", BootcampUpdate{Name: &name})
		require.NoError(t, err)
	})

	t.Run("changed address is re-geocoded", func(t *testing.T) {
		repo := newRepo()
		geo := &stubGeocoder{loc: geocode.Location{Latitude: 1, Longitude: 2}}
		addr := "new address"
		b, err := bootcampSvc(repo, geo, nil).Update(context.Background(), owner, "b1", BootcampUpdate{Address: &addr})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, b.Latitude, 1e-9)
		assert.InDelta(t, 2.0, b.Longitude, 1e-9)
	})

	t.Run("missing bootcamp", func(t *testing.T) {
		repo := newRepo()
		_, err := bootcampSvc(repo, nil, nil).Update(context.Background(), owner, "nope", BootcampUpdate{})
		requireAppError(t, err, http.StatusNotFound, "Bootcamp not found with id: nope")
	})
}

func TestBootcampDelete(t *testing.T) {
	owner := &entity.User{ID: "u1", Role: entity.RolePublisher}
	stranger := &entity.User{ID: "u2", Role: entity.RolePublisher}

	t.Run("owner deletes", func(t *testing.T) {
		repo := newStubBootcamps(&entity.Bootcamp{ID: "b1", UserID: "u1"})
		require.NoError(t, bootcampSvc(repo, nil, nil).Delete(context.Background(), owner, "b1"))
		assert.Equal(t, []string{"b1"}, repo.deleted)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		repo := newStubBootcamps(&entity.Bootcamp{ID: "b1", UserID: "u1"})
		err := bootcampSvc(repo, nil, nil).Delete(context.Background(), stranger, "b1")
		requireAppError(t, err, http.StatusUnauthorized, "User u2 is not authorized to delete bootcamp b1")
		assert.Empty(t, repo.deleted)
	})
}

func TestBootcampWithinRadius(t *testing.T) {
	t.Run("geocode failure", func(t *testing.T) {
		repo := newStubBootcamps()
		geo := &stubGeocoder{err: assert.AnError}
		_, err := bootcampSvc(repo, geo, nil).WithinRadius(context.Background(), "02215", 10)
		requireAppError(t, err, http.StatusInternalServerError, "Address could not be geocoded")
	})

	t.Run("no matches is an empty slice, not nil", func(t *testing.T) {
		repo := newStubBootcamps()
		list, err := bootcampSvc(repo, nil, nil).WithinRadius(context.Background(), "02215", 10)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	})
}

// fileHeader builds a real multipart file part so FileHeader.Open works.
func fileHeader(t *testing.T, filename, contentType string, size int) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestBootcampUploadPhoto(t *testing.T) {
	owner := &entity.User{ID: "u1", Role: entity.RolePublisher}

	t.Run("stores and records the derived filename", func(t *testing.T) {
		repo := newStubBootcamps(&entity.Bootcamp{ID: "b1", UserID: "u1"})
		store := newStubStore()
		name, err := bootcampSvc(repo, nil, store).UploadPhoto(context.Background(), owner, "b1",
			fileHeader(t, "shot.JPG", "image/jpeg", 100))
		require.NoError(t, err)
		assert.Equal(t, "photo_b1.jpg", name)
		assert.Equal(t, "photo_b1.jpg", repo.photos["b1"])
		assert.Contains(t, store.saved, "photo_b1.jpg")
	})

	t.Run("rejects non-images", func(t *testing.T) {
		repo := newStubBootcamps(&entity.Bootcamp{ID: "b1", UserID: "u1"})
		_, err := bootcampSvc(repo, nil, nil).UploadPhoto(context.Background(), owner, "b1",
			fileHeader(t, "notes.txt", "text/plain", 100))
		requireAppError(t, err, http.StatusBadRequest, "Please upload an image file")
	})

	t.Run("rejects oversized files", func(t *testing.T) {
		repo := newStubBootcamps(&entity.Bootcamp{ID: "b1", UserID: "u1"})
		svc := bootcampSvc(repo, nil, nil)
		svc.MaxFileUpload = 10
		_, err := svc.UploadPhoto(context.Background(), owner, "b1",
			fileHeader(t, "shot.jpg", "image/jpeg", 100))
		requireAppError(t, err, http.StatusBadRequest, "Please upload an image less than 10 bytes")
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := newStubBootcamps(&entity.Bootcamp{ID: "b1", UserID: "u1"})
		store := newStubStore()
		store.err = assert.AnError
		_, err := bootcampSvc(repo, nil, store).UploadPhoto(context.Background(), owner, "b1",
			fileHeader(t, "shot.jpg", "image/jpeg", 100))
		requireAppError(t, err, http.StatusInternalServerError, "Problem with file upload")
		assert.Empty(t, repo.photos)
	})
}
