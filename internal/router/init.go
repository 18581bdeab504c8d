package router

import (
	"github.com/campdir/campdir-api/internal/application"
	"github.com/campdir/campdir-api/internal/container"
	"github.com/campdir/campdir-api/internal/infrastructure/postgres"
	"github.com/campdir/campdir-api/internal/infrastructure/search"
	"github.com/campdir/campdir-api/internal/infrastructure/storage"
	handlers "github.com/campdir/campdir-api/internal/interface/http"
	"github.com/campdir/campdir-api/internal/router/modules"
	"github.com/campdir/campdir-api/pkg/geocode"
)

// InitModules wires repositories, services and handlers from the container
// singletons and registers every feature module with the registry. Called
// once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := postgres.NewUserRepository(pool)
	bootcamps := postgres.NewBootcampRepository(pool)
	courses := postgres.NewCourseRepository(pool)

	var photos storage.Store
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		photos = storage.NewGCSStore(gcs, cfg.GCSBucket)
	} else {
		photos = storage.NewDiskStore(cfg.FileUploadPath)
	}

	index := search.NewBootcampIndex(container.GetES(), cfg.ESIndex, logger)
	geocoder := geocode.NewMapQuest(cfg.GeocoderAPIKey)

	authSvc := application.NewAuthService(users, container.GetMailer(), container.GetRabbitPub(), logger)
	bootcampSvc := application.NewBootcampService(bootcamps, geocoder, photos, index, logger, cfg.MaxFileUpload)
	courseSvc := application.NewCourseService(courses, bootcamps, logger)
	userSvc := application.NewUserService(users)

	jwt := container.GetJWT()
	cookies := container.GetCookies()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, jwt, cookies, logger), jwt, users))
	r.Add(modules.NewBootcampsModule(handlers.NewBootcampHandler(bootcampSvc, logger), jwt, users))
	r.Add(modules.NewCoursesModule(handlers.NewCourseHandler(courseSvc, logger), jwt, users))
	r.Add(modules.NewUsersModule(handlers.NewUserHandler(userSvc, logger), jwt, users))
}
