package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"
	"time"

	"github.com/TestingSDK2/produco-backend/api"
	"github.com/TestingSDK2/produco-backend/app"
	"github.com/TestingSDK2/produco-backend/realtime"
	"github.com/TestingSDK2/produco-backend/util"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serves the produco api and notification socket",
		RunE:  run,
	}
}

func SetLogs() {
	now := time.Now()
	logFileName := now.Format("2006-01-02") + ".log"
	logFilePath := path.Join("./storage/logs", logFileName)

	if err := os.MkdirAll("./storage/logs", 0755); err != nil {
		logrus.Error("error creating log directory:", err)
		return
	}

	file, err := os.OpenFile(logFilePath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		logrus.Error("error opening log file:", err)
		return
	}

	// logs go to both file and terminal
	mw := io.MultiWriter(os.Stdout, file)
	logrus.SetOutput(mw)

	logrus.SetFormatter(&logrus.JSONFormatter{
		DisableHTMLEscape: true,
		TimestampFormat:   "2006-01-02 15:04:05",
	})
	logrus.SetReportCaller(true)
}

func run(cmd *cobra.Command, args []string) error {

	SetLogs()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	api, err := api.New(app)
	if err != nil {
		return err
	}

	hubConf, err := realtime.InitConfig()
	if err != nil {
		return err
	}
	hub := realtime.NewHub(hubConf)
	app.NotificationService.UseChannel(hub)

	go func() {
		defer util.RecoverGoroutinePanic(nil)
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		<-ch
		logrus.Info("signal caught. shutting down...")
		cancel()
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer util.RecoverGoroutinePanic(nil)
		defer wg.Done()
		defer cancel()
		serveAPI(ctx, api, hub)
	}()

	wg.Wait()
	return nil
}

func serveAPI(ctx context.Context, api *api.API, hub *realtime.Hub) {
	cors := handlers.CORS(
		handlers.AllowCredentials(),
		handlers.AllowedOrigins(api.Config.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "HEAD", "POST", "PUT", "PATCH", "OPTIONS", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "Origin"}),
	)

	router := mux.NewRouter()
	router.Use(cors)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"OK","timestamp":"%s","connections":%d}`, time.Now().Format(time.RFC3339), hub.Count())
	})
	router.Handle("/ws", hub)
	api.Init(router.PathPrefix("/api").Subrouter().StrictSlash(true))

	s := &http.Server{
		Addr:         fmt.Sprintf(":%d", api.Config.Port),
		Handler:      router,
		ReadTimeout:  api.Config.ReadTimeout * time.Second,
		WriteTimeout: api.Config.WriteTimeout * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer util.RecoverGoroutinePanic(nil)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logrus.Error(err)
		}
		close(done)
	}()

	logrus.Infof("serving api at http://127.0.0.1:%d", api.Config.Port)
	if err := s.ListenAndServe(); err != http.ErrServerClosed {
		logrus.Fatal(err)
	}
	<-done
}
