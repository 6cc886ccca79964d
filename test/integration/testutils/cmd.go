package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

var multiSpaceRegex = regexp.MustCompile(" +")

// RunWellhub executes a wellhub command with the given arguments string (split by spaces).
// Use RunWellhubArgs when arguments contain spaces that should be preserved.
func RunWellhub(ctx context.Context, env []string, binary, cmdArgs string, stdin io.Reader, nolog bool) (stdout, stderr []byte, err error) {
	cmdArgs = strings.TrimSpace(cmdArgs)
	cmdArgs = multiSpaceRegex.ReplaceAllString(cmdArgs, " ")

	var args []string
	if cmdArgs != "" {
		args = strings.Split(cmdArgs, " ")
	}

	return RunWellhubArgs(ctx, env, binary, args, stdin, nolog)
}

// RunWellhubArgs executes a wellhub command with pre-split arguments.
func RunWellhubArgs(ctx context.Context, env []string, binary string, args []string, stdin io.Reader, nolog bool) (stdout, stderr []byte, err error) {
	var outData, errData bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = stdin
	cmd.Stdout = &outData
	cmd.Stderr = &errData

	// Custom env goes after the host env so it wins on duplicated keys.
	newEnv := append([]string{}, os.Environ()...)
	newEnv = append(newEnv, env...)
	if nolog {
		newEnv = append(newEnv, "WELLHUB_NO_LOG=true")
	}
	cmd.Env = newEnv

	err = cmd.Run()

	return outData.Bytes(), errData.Bytes(), err
}
