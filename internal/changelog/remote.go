package changelog

import (
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5"
)

// remoteRe matches GitHub remote URLs in HTTPS and SSH form and captures
// the owner (alphanumeric and hyphens, 1-39 chars, no leading or trailing
// hyphen) and the repository name. Only ".git" suffixed URLs match.
var remoteRe = regexp.MustCompile(
	`^(?:https://github\.com/|git@github\.com:)` +
		`(?P<owner>[A-Za-z0-9](?:[A-Za-z0-9-]{0,37}[A-Za-z0-9])?)/` +
		`(?P<repo>[A-Za-z0-9_-]+)\.git$`,
)

// ParseRemoteURL extracts the owner and repository name from a GitHub
// remote URL. ok is false when the URL does not match the expected shape.
func ParseRemoteURL(url string) (owner, repo string, ok bool) {
	m := remoteRe.FindStringSubmatch(url)
	if m == nil {
		return "", "", false
	}
	return m[remoteRe.SubexpIndex("owner")], m[remoteRe.SubexpIndex("repo")], true
}

// remoteDetails reads the origin remote from the repository configuration
// and parses it. A missing remote or a URL that does not match the GitHub
// shape is recoverable: both values come back empty and callers skip link
// generation.
func remoteDetails(repo *git.Repository) (owner, name string) {
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		log.Warn("no origin remote configured", "error", err)
		return "", ""
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		log.Warn("origin remote has no URL")
		return "", ""
	}

	owner, name, ok := ParseRemoteURL(urls[0])
	if !ok {
		log.Warn("remote URL does not look like a GitHub repository", "url", urls[0])
		return "", ""
	}

	return owner, name
}
