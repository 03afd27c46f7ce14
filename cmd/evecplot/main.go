// Copyright (C) The Evecplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package main

import "github.com/paleogenomics/evecplot"

func main() {
	evecplot.Main()
}
