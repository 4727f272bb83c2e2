//go:build opengl

package main

import _ "github.com/gogpu/varlet/backend/opengl"
