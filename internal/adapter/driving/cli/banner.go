package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/covid-stats-dashboard-go/pkg/version"
)

const banner = `
   ____ _____     _____ ____     ____  _        _       
  / ___/ _ \ \   / /_ _|  _ \   / ___|| |_ __ _| |_ ___ 
 | |  | | | \ \ / / | || | | |  \___ \| __/ _' | __/ __|
 | |__| |_| |\ V /  | || |_| |   ___) | || (_| | |_\__ \
  \____\___/  \_/  |___|____/   |____/ \__\__,_|\__|___/
`

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("COVID Stats Dashboard CLI (v%s)", version.FormatVersion())))
}
