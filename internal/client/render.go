package client

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"log-journal-system/internal/model"

	"github.com/charmbracelet/lipgloss"
)

type MediaKindType string

const (
	MediaNone  MediaKindType = "none"
	MediaImage MediaKindType = "image"
	MediaVideo MediaKindType = "video"
)

var videoURL = regexp.MustCompile(`(?i)\.(mp4|mov|avi)$`)

// MediaKind decides how a media URL is shown: video for mp4/mov/avi,
// image for anything else.
func MediaKind(url *string) MediaKindType {
	switch {
	case url == nil || *url == "":
		return MediaNone
	case videoURL.MatchString(*url):
		return MediaVideo
	default:
		return MediaImage
	}
}

var (
	green = lipgloss.Color("#33ff00")
	dim   = lipgloss.Color("#1a8000")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(dim).
			Padding(0, 1).
			MarginBottom(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(green)
	metaStyle  = lipgloss.NewStyle().Foreground(dim)
	mediaStyle = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

const emptyMessage = ">> No logs found. Start logging your journey!"

// Render writes one card per log in the order given.
func Render(w io.Writer, logs []model.Log) error {
	if len(logs) == 0 {
		_, err := fmt.Fprintln(w, emptyMessage)
		return err
	}
	for _, l := range logs {
		if _, err := fmt.Fprintln(w, renderCard(l)); err != nil {
			return err
		}
	}
	return nil
}

func renderCard(l model.Log) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("#%d %s", l.ID, model.StringValue(l.Title))),
		metaStyle.Render(fmt.Sprintf("%s | [%s]", l.CreatedAt.Local().Format("2006-01-02"), strings.ToUpper(l.Type))),
	}
	if l.Content != nil && *l.Content != "" {
		lines = append(lines, *l.Content)
	}
	if kind := MediaKind(l.MediaURL); kind != MediaNone {
		lines = append(lines, mediaStyle.Render(fmt.Sprintf("[%s] %s", kind, *l.MediaURL)))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}
