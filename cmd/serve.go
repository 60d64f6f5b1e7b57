package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ByLCY/fretsketch/layout"
	canvasrenderer "github.com/ByLCY/fretsketch/renderer/canvas"
	"github.com/ByLCY/fretsketch/server"
)

var (
	serveAddr    string
	serveOrigins []string
	serveFont    string
	serveWidth   float64
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "监听地址")
	serveCmd.Flags().StringSliceVar(&serveOrigins, "origins", nil, "允许跨域访问的来源，默认全部")
	serveCmd.Flags().StringVar(&serveFont, "font", "", "字体（embed:<name> 或 TTF 路径）")
	serveCmd.Flags().Float64Var(&serveWidth, "width", 0, "默认输出宽度（mm）")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves chord diagrams over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveWidth != 0 {
			if err := layout.CheckWidth(serveWidth); err != nil {
				return err
			}
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := slog.New(slog.NewTextHandler(os.Stderr, nil))
		backend := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{BaseDir: ".", Font: serveFont})
		srv := server.New(backend, server.Options{AllowedOrigins: serveOrigins, Logger: log, Width: serveWidth})
		if err := srv.ListenAndServe(ctx, serveAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}
