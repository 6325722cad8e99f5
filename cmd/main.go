package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/pdf_zipper/internal/archive"
	"github.com/Vovarama1992/pdf_zipper/internal/convert"
	"github.com/Vovarama1992/pdf_zipper/internal/delivery"
	"github.com/Vovarama1992/pdf_zipper/internal/error_notificator"
	"github.com/Vovarama1992/pdf_zipper/internal/fetch"
	"github.com/Vovarama1992/pdf_zipper/internal/pdf"
	"github.com/Vovarama1992/pdf_zipper/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	fetcher := fetch.NewHTTPFetcher()
	rasterizer := pdf.NewPopplerRasterizer()
	assembler := archive.NewAssembler()

	// архив по умолчанию уходит inline base64, как в исходном конвертере;
	// ARCHIVE_DELIVERY=s3 переключает на загрузку в бакет со ссылкой в ответе
	var store convert.ArchiveUploader
	if os.Getenv("ARCHIVE_DELIVERY") == "s3" {
		s3Client, err := storage.NewS3Client()
		if err != nil {
			log.Fatalf("failed to init s3: %v", err)
		}
		store = storage.NewArchiveStore(s3Client)
	}

	errInfra := error_notificator.NewInfra()
	errService := error_notificator.NewService(errInfra)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	fetchService := fetch.NewService(fetcher)
	pdfService := pdf.NewService(rasterizer)

	convertService := convert.NewService(
		fetchService,
		pdfService,
		assembler,
		store,
		errService,
		zl,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	convertHandler := delivery.NewConvertHandler(convertService, zl)
	delivery.RegisterRoutes(r, convertHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "pdf_zipper",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
