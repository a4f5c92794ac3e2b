package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ResolveResult maps attachments to their on-disk files and, when a restore
// directory is in play, their destination paths.
type ResolveResult struct {
	// Paths holds the restored path per attachment id, only for
	// attachments whose source file was found and only when restoring.
	Paths map[string]string
	// Copies is the plan for the copy executor.
	Copies []CopyInstruction

	Resolved   int
	Unresolved int
}

// ResolveAttachments locates the source file for each attachment under the
// export's attachments directory and computes destination paths under the
// restore directory. No file is copied here. A missing source file is never
// fatal; the attachment stays unresolved and its restored path stays null.
func ResolveAttachments(atts []Attachment, sourceDir, restoreDir string, s Settings) ResolveResult {
	res := ResolveResult{Paths: map[string]string{}}
	include := includedVersions(atts, s)

	for _, att := range atts {
		if !include[att.Id] {
			continue
		}

		src, ok := findSource(sourceDir, att)
		if !ok {
			res.Unresolved++
			s.Logger.Debug().Str("attachment", att.Id).Str("container", att.ContainerId).Msg("attachment source not found")
			continue
		}
		res.Resolved++

		if restoreDir == "" {
			continue
		}
		dest := destPath(restoreDir, att, s.Flatten)
		res.Paths[att.Id] = dest
		res.Copies = append(res.Copies, CopyInstruction{AttachmentId: att.Id, Source: src, Dest: dest})
	}

	return res
}

// includedVersions applies the latestOnly setting: per container and
// filename, only the highest version resolves.
func includedVersions(atts []Attachment, s Settings) map[string]bool {
	include := map[string]bool{}
	if !s.LatestOnly {
		for _, att := range atts {
			include[att.Id] = true
		}
		return include
	}

	type key struct{ container, filename string }
	latest := map[key]Attachment{}
	for _, att := range atts {
		k := key{att.ContainerId, att.Filename}
		cur, ok := latest[k]
		if !ok || att.Version > cur.Version {
			latest[k] = att
		}
	}
	for _, att := range latest {
		include[att.Id] = true
	}
	return include
}

// findSource checks the export's layout, then the fallback conventions older
// export variants used.
func findSource(sourceDir string, att Attachment) (string, bool) {
	if att.ContainerId == "" || att.Id == "" {
		return "", false
	}
	for _, cand := range sourceCandidates(sourceDir, att) {
		fi, err := os.Stat(cand)
		if err == nil && !fi.IsDir() {
			return cand, true
		}
	}
	return "", false
}

func sourceCandidates(sourceDir string, att Attachment) []string {
	base := filepath.Join(sourceDir, att.ContainerId, att.Id)
	cands := []string{
		// current layout: directory per content, directory per
		// attachment, file per version
		filepath.Join(base, strconv.FormatInt(att.Version, 10)),
		filepath.Join(base, "1"),
		// no version directory
		base,
	}
	if att.Filename != "" {
		// oldest layout: original filename directly under the content
		cands = append(cands, filepath.Join(sourceDir, att.ContainerId, att.Filename))
	}
	return cands
}

func destPath(restoreDir string, att Attachment, flatten bool) string {
	name := att.Filename
	if name == "" {
		name = att.Id
	}
	if flatten {
		return filepath.Join(restoreDir, fmt.Sprintf("%s_%s_%s", att.ContainerId, att.Id, name))
	}
	return filepath.Join(restoreDir, att.ContainerId, att.Id, name)
}
