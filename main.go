// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/fair-bioheaders/fhr/cmd/fhr"

func main() {
	cmd.Execute()
}
