package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lectern/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the tutor HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, envOpts{needLLM: true})
		if err != nil {
			return err
		}
		defer e.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = e.cfg.Server.Addr
		}
		if e.cfg.Log.Mode == "production" || e.cfg.Log.Mode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}

		tutor, err := e.tutor(cmd.Context())
		if err != nil {
			return err
		}

		router := httpapi.NewRouter(httpapi.RouterConfig{
			CORSOrigins:        e.cfg.Server.CORSOrigins,
			HealthHandler:      httpapi.NewHealthHandler(),
			CourseHandler:      httpapi.NewCourseHandler(e.log, tutor),
			QuizHandler:        httpapi.NewQuizHandler(e.log, e.quizzes(), e.cfg.Tutor.DefaultUser),
			PerformanceHandler: httpapi.NewPerformanceHandler(e.log, e.tracker()),
			RoadmapHandler:     httpapi.NewRoadmapHandler(e.log, e.roadmaps()),
		})
		srv := httpapi.NewServer(addr, router, e.log)

		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			return srv.Run(ctx)
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from server.addr, :8080)")
}
