package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

const binaryName = "focusflow"

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// Stage names a step of Update, reported in this order.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageInstall  Stage = "install"
	StageDone     Stage = "done"
)

// UpdateInput selects the release to install. An empty TargetVersion means
// the latest release; "1.4.0" and "v1.4.0" are equivalent.
type UpdateInput struct {
	CurrentVersion string
	TargetVersion  string
}

// UpdateProgress is sent at the start of each stage. During StageDownload it
// is also sent as the archive arrives, with Bytes and Total filled in (Total
// is 0 when the server does not send a length).
type UpdateProgress struct {
	Stage   Stage
	Message string
	Bytes   int64
	Total   int64
}

// Asset names the files of one release build.
type Asset struct {
	Archive   string // focusflow_1.4.0_linux_amd64.tar.gz
	Checksums string // focusflow_1.4.0_checksums.txt
	Binary    string // file inside Archive
}

// releasePlatforms lists the builds published with every release.
var releasePlatforms = map[string][]string{
	"darwin":  {"amd64", "arm64"},
	"linux":   {"amd64", "arm64"},
	"windows": {"amd64", "arm64"},
}

// AssetFor returns the release files for version built for goos/goarch.
func AssetFor(version, goos, goarch string) (Asset, error) {
	v := strings.TrimPrefix(canonical(version), "v")
	if v == "" {
		return Asset{}, fmt.Errorf("invalid release version %q", version)
	}
	arches, ok := releasePlatforms[goos]
	if !ok {
		return Asset{}, fmt.Errorf("no release builds for %s", goos)
	}
	if !slices.Contains(arches, goarch) {
		return Asset{}, fmt.Errorf("no release builds for %s/%s", goos, goarch)
	}

	a := Asset{
		Binary:    binaryName,
		Checksums: fmt.Sprintf("%s_%s_checksums.txt", binaryName, v),
	}
	ext := ".tar.gz"
	if goos == "windows" {
		ext = ".zip"
		a.Binary += ".exe"
	}
	a.Archive = fmt.Sprintf("%s_%s_%s_%s%s", binaryName, v, goos, goarch, ext)
	return a, nil
}

// Update downloads, verifies and installs a release over the running binary.
// A nil progress func is allowed.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	current := canonical(input.CurrentVersion)
	if current == "" {
		return ErrDevBuild
	}
	report := progress
	if report == nil {
		report = func(UpdateProgress) {}
	}

	tag, err := c.resolveTarget(ctx, current, input.TargetVersion, report)
	if err != nil {
		return err
	}

	asset, err := AssetFor(tag, runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	report(UpdateProgress{Stage: StageDownload, Message: fmt.Sprintf("Downloading focusflow %s...", tag)})
	sums, err := c.download(ctx, c.releaseURL(tag, asset.Checksums), nil)
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[asset.Archive]
	if !ok {
		return fmt.Errorf("%s has no entry for %s", asset.Checksums, asset.Archive)
	}
	archive, err := c.download(ctx, c.releaseURL(tag, asset.Archive), func(n, total int64) {
		report(UpdateProgress{Stage: StageDownload, Message: downloadMessage(n, total), Bytes: n, Total: total})
	})
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(UpdateProgress{Stage: StageVerify, Message: "Verifying checksum..."})
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	report(UpdateProgress{Stage: StageExtract, Message: "Unpacking..."})
	bin, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report(UpdateProgress{Stage: StageInstall, Message: "Installing..."})
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}
	if err := installBinary(bin, target); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	report(UpdateProgress{Stage: StageDone, Message: fmt.Sprintf("Updated focusflow %s -> %s", current, tag)})
	return nil
}

// resolveTarget returns the canonical tag to install. Asking for the running
// version is ErrAlreadyLatest; older tags are allowed.
func (c *Checker) resolveTarget(ctx context.Context, current, target string, report func(UpdateProgress)) (string, error) {
	if target != "" {
		tag := canonical(target)
		if tag == "" {
			return "", fmt.Errorf("invalid target version %q", target)
		}
		if semver.Compare(tag, current) == 0 {
			return "", ErrAlreadyLatest
		}
		return tag, nil
	}

	report(UpdateProgress{Stage: StageCheck, Message: "Checking for a newer release..."})
	result, err := c.Check(ctx, &CheckInput{Version: current})
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}
	if !result.UpdateAvailable {
		return "", ErrAlreadyLatest
	}
	return result.LatestVersion, nil
}

func (c *Checker) releaseURL(tag, file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBaseURL, "/"), c.owner, c.repo, tag, file)
}

func downloadMessage(n, total int64) string {
	if total <= 0 {
		return fmt.Sprintf("  %d KB", n/1024)
	}
	return fmt.Sprintf("  %d%%", n*100/total)
}

// download fetches url into memory. onRead, when set, sees the running byte
// count after every ten percent of a known length, or every chunk otherwise,
// and always once at the end.
func (c *Checker) download(ctx context.Context, url string, onRead func(n, total int64)) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	var body io.Reader = resp.Body
	cr := &countingReader{r: resp.Body, total: resp.ContentLength, onRead: onRead}
	if onRead != nil {
		body = cr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	if onRead != nil && cr.reported != cr.n {
		onRead(cr.n, max(cr.total, 0))
	}
	return data, nil
}

type countingReader struct {
	r        io.Reader
	n        int64
	total    int64
	reported int64
	onRead   func(n, total int64)
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	cr.n += int64(n)
	if n > 0 {
		if cr.total <= 0 {
			cr.reported = cr.n
			cr.onRead(cr.n, 0)
		} else if cr.n*10/cr.total > cr.reported*10/cr.total {
			cr.reported = cr.n
			cr.onRead(cr.n, cr.total)
		}
	}
	return n, err
}

// parseChecksums reads sha256sum output. Binary-mode entries ("*name") are
// accepted.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums
}

func verifyChecksum(data []byte, want string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); got != want {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, want, got)
	}
	return nil
}

func extractBinary(archive []byte, asset Asset) ([]byte, error) {
	var (
		bin []byte
		err error
	)
	if strings.HasSuffix(asset.Archive, ".zip") {
		bin, err = findInZip(archive, asset.Binary)
	} else {
		bin, err = findInTarGz(archive, asset.Binary)
	}
	if err != nil {
		return nil, err
	}
	if len(bin) == 0 {
		return nil, fmt.Errorf("%s in %s is empty", asset.Binary, asset.Archive)
	}
	return bin, nil
}

func findInTarGz(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && filepath.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func findInZip(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || filepath.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// installBinary replaces target with bin, keeping target's file mode. The old
// binary is moved aside first and put back if the swap fails, so a running
// executable can be replaced on every platform.
func installBinary(bin []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+binaryName+"-new-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(bin); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}

	backup := target + ".old"
	_ = os.Remove(backup)
	if err := os.Rename(target, backup); err != nil {
		return fmt.Errorf("move current binary aside: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		if rerr := os.Rename(backup, target); rerr != nil {
			return fmt.Errorf("swap failed (%v) and restore failed: %w", err, rerr)
		}
		return fmt.Errorf("swap binary: %w", err)
	}
	// Windows keeps the running image locked; the backup is cleaned up by the
	// next update there.
	_ = os.Remove(backup)
	return nil
}
