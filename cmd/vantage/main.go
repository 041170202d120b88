package main

import (
	"os"
	"runtime"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/vantage3d/vantage/core"
	"github.com/vantage3d/vantage/window"
)

func init() {
	// The windowing system and the driver both demand the main thread.
	runtime.LockOSThread()
}

func main() {
	// Optional .env next to the binary.
	_ = godotenv.Load()

	cfg, err := loadConfiguration(configPath())
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	ws, err := window.NewSystem()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	drv, err := core.NewVulkanDriver(ws.InstanceProcAddr())
	if err != nil {
		ws.Terminate()
		log.Error(err)
		os.Exit(1)
	}

	if err := core.New(cfg, drv, ws).Run(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
