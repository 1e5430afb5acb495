package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errors.New("stdin unavailable")
	}

	restoreEcho, err := disableEcho(stdin)
	if err != nil {
		return nil, err
	}
	defer restoreEcho()

	return readPasswordLine(stdin)
}

func readPasswordLine(reader io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
