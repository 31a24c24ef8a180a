package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Open launches the system browser on an article link. Only http and
// https links are accepted since the URL comes from a third-party feed.
func Open(rawURL string) error {
	name, args, err := command(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("opening %s: %w", rawURL, err)
	}
	return nil
}

func command(goos, rawURL string) (string, []string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil, fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", nil, fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return "", nil, fmt.Errorf("invalid URL %q: missing host", rawURL)
	}

	switch goos {
	case "darwin":
		return "open", []string{rawURL}, nil
	case "windows":
		// rundll32 avoids cmd's shell interpretation of & in query strings
		return "rundll32", []string{"url.dll,FileProtocolHandler", rawURL}, nil
	default:
		return "xdg-open", []string{rawURL}, nil
	}
}
