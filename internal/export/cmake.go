package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/keyboardio/testplan/internal/errors"
	"github.com/keyboardio/testplan/internal/plan"
)

const cmakeBanner = "################################################################################"

var cmakeEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "\n", `\n`)

// CMakeWriter writes a plan as calls to the kaleidoscope_firmware_build and
// kaleidoscope_firmware_test CMake functions.
type CMakeWriter struct{}

func (CMakeWriter) Write(w io.Writer, p *plan.Plan) error {
	out := bufio.NewWriter(w)

	writeCMakeSection(out, "Kaleidoscope firmware builds")

	for _, build := range p.Builds {
		fmt.Fprintln(out, "kaleidoscope_firmware_build(")
		writeCMakeArg(out, "BUILD_ID", strconv.Itoa(build.ID))
		writeCMakeArg(out, "ARDUINO_SKETCH", build.Sketch)

		if build.BoardsURL != "" {
			writeCMakeArg(out, "BOARDS_URL", build.BoardsURL)
		}

		if build.BoardsCommit != "" {
			writeCMakeArg(out, "BOARDS_COMMIT", build.BoardsCommit)
		}

		for _, module := range build.Modules {
			writeCMakeArg(out, "URL", module.URL)
			writeCMakeArg(out, "COMMIT", module.Commit)
			writeCMakeArg(out, "NAME", module.Name)
		}

		writeCMakeComment(out, "Defined in", build.Origin)
		fmt.Fprintln(out, ")")
		fmt.Fprintln(out)
	}

	writeCMakeSection(out, "Kaleidoscope tests")

	for _, test := range p.Tests {
		fmt.Fprintln(out, "kaleidoscope_firmware_test(")
		writeCMakeArg(out, "TEST_ID", strconv.Itoa(test.ID))
		writeCMakeArg(out, "TEST_NAME", test.Name)
		writeCMakeArg(out, "TEST_DESCRIPTION", test.Description)
		writeCMakeArg(out, "PYTHON_DRIVER", test.Driver)

		if test.DriverFlags != "" {
			writeCMakeArg(out, "PYTHON_DRIVER_FLAGS", test.DriverFlags)
		}

		writeCMakeArg(out, "FIRMWARE_BUILD_ID", strconv.Itoa(test.BuildID))

		writeCMakeComment(out, "Directories the test's values were defined in", "")
		writeCMakeArg(out, "NAME_ORIGIN", test.Origins.Name)
		writeCMakeArg(out, "DESCRIPTION_ORIGIN", test.Origins.Description)
		writeCMakeArg(out, "PYTHON_DRIVER_ORIGIN", test.Origins.Driver)
		writeCMakeArg(out, "FIRMWARE_BUILD_ID_ORIGIN", test.Origins.Build)
		fmt.Fprintln(out, ")")
		fmt.Fprintln(out)
	}

	if err := out.Flush(); err != nil {
		return errors.New(err)
	}

	return nil
}

func writeCMakeSection(out *bufio.Writer, title string) {
	fmt.Fprintln(out, cmakeBanner)
	fmt.Fprintf(out, "# %s\n", title)
	fmt.Fprintln(out, cmakeBanner)
	fmt.Fprintln(out)
}

func writeCMakeArg(out *bufio.Writer, keyword, value string) {
	fmt.Fprintf(out, "   %s \"%s\"\n", keyword, cmakeEscaper.Replace(value))
}

func writeCMakeComment(out *bufio.Writer, text, value string) {
	if value == "" {
		fmt.Fprintf(out, "   # %s\n", text)
		return
	}

	fmt.Fprintf(out, "   # %s %s\n", text, strings.ReplaceAll(value, "\n", " "))
}
