package update

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	GitHubAPIURL = "https://api.github.com/repos/rinkside/rinkside/releases/latest"
	ReleasesURL  = "https://github.com/rinkside/rinkside/releases/latest"
	UserAgent    = "rinkside-cli"
)

// Release represents a GitHub release
type Release struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Checker looks up the latest published release
type Checker struct {
	apiURL      string
	releasesURL string
	httpClient  *http.Client
}

// NewChecker returns a checker for the rinkside GitHub releases
func NewChecker() *Checker {
	return &Checker{
		apiURL:      GitHubAPIURL,
		releasesURL: ReleasesURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ReleasesURL is where users download new versions. It prefers the page of
// the last release fetched.
func (c *Checker) ReleasesURL() string {
	return c.releasesURL
}

// GetLatestVersion fetches the latest version from GitHub
func (c *Checker) GetLatestVersion() (string, error) {
	req, err := http.NewRequest("GET", c.apiURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var release Release
	if err := json.Unmarshal(body, &release); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("latest release has no tag")
	}
	if release.HTMLURL != "" {
		c.releasesURL = release.HTMLURL
	}

	return release.TagName, nil
}

// CheckForUpdate checks if a new version is available
func (c *Checker) CheckForUpdate(currentVersion string) (bool, string, error) {
	latestVersion, err := c.GetLatestVersion()
	if err != nil {
		return false, "", err
	}

	return compareVersions(currentVersion, latestVersion), latestVersion, nil
}

// compareVersions returns true if latest is newer than current
func compareVersions(current, latest string) bool {
	current = strings.TrimPrefix(current, "v")
	latest = strings.TrimPrefix(latest, "v")

	// Always suggest update from dev version
	if current == "dev" {
		return true
	}

	cur := strings.Split(current, ".")
	lat := strings.Split(latest, ".")
	for i := 0; i < len(cur) || i < len(lat); i++ {
		c, l := versionPart(cur, i), versionPart(lat, i)
		if c != l {
			return l > c
		}
	}
	return false
}

func versionPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	// Drop pre-release and build suffixes such as "3-rc1"
	p := strings.FieldsFunc(parts[i], func(r rune) bool { return r == '-' || r == '+' })
	if len(p) == 0 {
		return 0
	}
	n, _ := strconv.Atoi(p[0])
	return n
}
