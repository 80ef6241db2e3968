package config_test

import (
	"fmt"

	"github.com/roach88/tiaki/internal/config"
)

func ExampleDefault() {
	cfg := config.Default()
	fmt.Println("council:", cfg.CouncilValue())
	fmt.Println("species checkpoint:", cfg.Checkpoint())
	fmt.Println("export:", cfg.Export.Dir, cfg.Export.Format)
	fmt.Println("logging:", cfg.Logging.Level)
	// Output:
	// council: hamilton
	// species checkpoint: true
	// export: . docx
	// logging: info
}
