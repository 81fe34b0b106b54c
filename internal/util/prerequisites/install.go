package prerequisites

import (
	"fmt"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// packageManager describes one way of installing a package on the host.
type packageManager struct {
	Name string
	Args []string // arguments before the package name
}

// installers is the ordered list of package managers to try. The first one
// present on the host wins for each tool that lists a package for it.
var installers = []packageManager{
	{Name: "apt-get", Args: []string{"install", "-y"}},
	{Name: "dnf", Args: []string{"install", "-y"}},
	{Name: "yum", Args: []string{"install", "-y"}},
	{Name: "apk", Args: []string{"add"}},
	{Name: "brew", Args: []string{"install"}},
	{Name: "snap", Args: []string{"install", "--classic"}},
}

// runInstall is swapped in tests.
var runInstall = func(manager string, args ...string) error {
	// #nosec G204 - manager and args come from the static installers table
	cmd := exec.Command(manager, args...)
	return cmd.Run()
}

// install tries each available package manager in order until one installs
// the tool. It fails only when no manager on this host can provide it.
func install(tool Tool) error {
	tried := 0

	for _, mgr := range installers {
		pkg, ok := tool.Packages[mgr.Name]
		if !ok {
			continue
		}
		if _, err := lookPath(mgr.Name); err != nil {
			continue
		}

		tried++
		args := append(append([]string{}, mgr.Args...), pkg)
		log.Info().Str("tool", tool.Name).Str("manager", mgr.Name).Msg("installing missing tool")

		if err := runInstall(mgr.Name, args...); err != nil {
			log.Warn().Str("tool", tool.Name).Str("manager", mgr.Name).Err(err).Msg("install attempt failed")
			continue
		}
		return nil
	}

	if tried == 0 {
		return fmt.Errorf("no package manager on this host can install %s", tool.Name)
	}
	return fmt.Errorf("all install attempts for %s failed", tool.Name)
}
