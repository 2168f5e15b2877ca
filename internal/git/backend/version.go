package backend

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
)

// Minimum supported git version for the CLI backend. "git rev-parse
// --absolute-git-dir" and "git log %aI/%cI" placeholders set the floor.
var minGitVersion = gitVersion{major: 2, minor: 13, patch: 0}

type gitVersion struct {
	major int
	minor int
	patch int
}

func MinGitVersion() string {
	return minGitVersion.String()
}

func (v gitVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

func (v gitVersion) less(other gitVersion) bool {
	if v.major != other.major {
		return v.major < other.major
	}
	if v.minor != other.minor {
		return v.minor < other.minor
	}
	return v.patch < other.patch
}

// Matches "2.44.0", "2.39.3 (Apple Git-146)", "2.39.3.windows.1" and "2.42".
var gitVersionRe = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

func parseGitVersionOutput(out string) (gitVersion, bool) {
	m := gitVersionRe.FindStringSubmatch(strings.TrimSpace(out))
	if m == nil {
		return gitVersion{}, false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return gitVersion{}, false
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return gitVersion{}, false
	}
	patch := 0
	if m[3] != "" {
		if p, err := strconv.Atoi(m[3]); err == nil {
			patch = p
		}
	}
	return gitVersion{major: major, minor: minor, patch: patch}, true
}

func validateGitVersionOutput(out string) error {
	got, ok := parseGitVersionOutput(out)
	if !ok {
		return fmt.Errorf("unable to parse git version output: %q", strings.TrimSpace(out))
	}
	if got.less(minGitVersion) {
		return fmt.Errorf("git %s is too old; git-lastseen requires git >= %s", got, minGitVersion)
	}
	return nil
}

type gitVersionInfo struct {
	out string
	err error
}

var gitVersionInfoCached = sync.OnceValue(func() gitVersionInfo {
	outBytes, err := exec.Command("git", "--version").CombinedOutput()
	out := strings.TrimSpace(string(outBytes))
	if err != nil {
		if out != "" {
			return gitVersionInfo{out: out, err: fmt.Errorf("git --version: %v: %s", err, out)}
		}
		return gitVersionInfo{out: out, err: fmt.Errorf("git --version: %w", err)}
	}
	return gitVersionInfo{out: out}
})

// GitVersion reports the output of "git --version".
func GitVersion() (string, error) {
	info := gitVersionInfoCached()
	return info.out, info.err
}

var ensureMinGitVersion = sync.OnceValue(func() error {
	info := gitVersionInfoCached()
	if info.err != nil {
		return info.err
	}
	return validateGitVersionOutput(info.out)
})
