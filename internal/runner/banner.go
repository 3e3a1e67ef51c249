package runner

import (
	"github.com/logrusorgru/aurora/v4"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/lanbeacon/pkg/version"
)

const banner = `
   __                __
  / /___ _____  ____/ /_  ___  ____ __________  ____
 / / __ '/ __ \/ __  / _ \/ _ \/ __ '/ ___/ __ \/ __ \
/ / /_/ / / / / /_/ /  __/  __/ /_/ / /__/ /_/ / / / /
/_/\__,_/_/ /_/\__,_/\___/\___/\__,_/\___/\____/_/ /_/
`

// showBanner is used to show the banner to the user
func showBanner() {
	if au == nil {
		au = aurora.New(aurora.WithColors(true))
	}
	gologger.Print().Msgf("%s\n", au.Bold(au.BrightBlue(banner)))
	gologger.Print().Msgf("\t\t%s\n\n", au.Faint(version.GetVersion()))
}
