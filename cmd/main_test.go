package main

import (
	"bytes"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestRun(t *testing.T) {
	convey.Convey("Given the main entry point", t, func() {
		var stdout, stderr bytes.Buffer

		convey.Convey("When printing the version", func() {
			code := run([]string{"version"}, &stdout, &stderr)

			convey.Convey("Then it should exit cleanly", func() {
				convey.So(code, convey.ShouldEqual, 0)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "pcforge")
				convey.So(stderr.Len(), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When checking a build file", func() {
			code := run([]string{"check", "-f", "../internal/cli/testdata/am5-build.yaml"}, &stdout, &stderr)

			convey.Convey("Then the report should go to stdout", func() {
				convey.So(code, convey.ShouldEqual, 0)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "compatible: yes")
			})
		})

		convey.Convey("When the command is unknown", func() {
			code := run([]string{"frobnicate"}, &stdout, &stderr)

			convey.Convey("Then it should report the error and exit non-zero", func() {
				convey.So(code, convey.ShouldEqual, 1)
				convey.So(stderr.String(), convey.ShouldStartWith, "error: ")
			})
		})
	})
}
