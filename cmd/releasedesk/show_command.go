package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"releasedesk/internal/api"
	"releasedesk/internal/language"
	"releasedesk/internal/services/distribution"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <release-id>",
		Short: "Show a release as the distribution service sees it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			client := distribution.NewClient(cfg)
			release, err := client.FetchRelease(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary(release))
			if release.Step2 != nil && len(release.Step2.Tracks) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderTracks(release.Step2.Tracks))
			}
			if release.Step3 != nil {
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderDistribution(release.Step3))
			}
			return nil
		},
	}
}

func renderSummary(release *api.Release) string {
	rows := [][]string{
		{"Release ID", release.ReleaseID},
		{"Category", release.Category},
		{"Status", release.Status},
	}
	if release.Step1 != nil {
		step1 := release.Step1
		rows = append(rows,
			[]string{"Name", step1.ReleaseName},
			[]string{"Artists", strings.Join(step1.PrimaryArtists, ", ")},
			[]string{"Genre", genreLabel(step1.Genre, step1.Subgenre)},
		)
		if step1.Label != "" {
			rows = append(rows, []string{"Label", step1.Label})
		}
		if step1.ReleaseDate != "" {
			rows = append(rows, []string{"Release date", step1.ReleaseDate})
		}
	}
	if release.CreatedAt != "" {
		rows = append(rows, []string{"Created", release.CreatedAt})
	}
	if release.UpdatedAt != "" {
		rows = append(rows, []string{"Updated", release.UpdatedAt})
	}
	return renderTable([]string{"Field", "Value"}, rows)
}

func renderTracks(tracks []api.TrackPayload) string {
	rows := make([][]string, 0, len(tracks))
	for i, track := range tracks {
		isrc := track.Isrc
		if track.IsrcNeeded {
			isrc = "assigned by platform"
		}
		lang := "instrumental"
		if track.VocalsPresent {
			lang = language.DisplayName(track.AudioLanguage)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			track.Name,
			strings.Join(track.PrimaryArtists, ", "),
			isrc,
			lang,
			track.Explicit,
		})
	}
	return renderTable([]string{"#", "Title", "Artists", "ISRC", "Language", "Explicit"}, rows)
}

func renderDistribution(step3 *api.Step3Payload) string {
	territories := strings.Join(step3.Territories, ", ")
	if step3.WorldwideRelease {
		territories = "worldwide"
	}
	rows := [][]string{
		{"Territories", territories},
		{"Domestic stores", strings.Join(step3.DomesticStores, ", ")},
		{"International stores", strings.Join(step3.InternationalStores, ", ")},
		{"Caller tune", yesNo(step3.CallerTuneEnabled)},
	}
	if step3.CallerTuneEnabled {
		rows = append(rows, []string{"Caller tune partners", strings.Join(step3.CallerTunePartners, ", ")})
	}
	rows = append(rows, []string{"Personal funds", yesNo(step3.PersonalFunds)})
	if step3.PersonalFunds {
		rows = append(rows, []string{"Funds amount", step3.FundsAmount})
	}
	rows = append(rows, []string{"Brand tie-in", yesNo(step3.BrandTieIn)})
	if step3.BrandTieIn {
		rows = append(rows, []string{"Brand description", step3.BrandDescription})
	}
	return renderTable([]string{"Distribution", "Value"}, rows)
}

func genreLabel(genre, subgenre string) string {
	if subgenre == "" {
		return genre
	}
	return genre + " / " + subgenre
}
