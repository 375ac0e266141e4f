package gl

import (
	"fmt"
	"strings"

	opengl "github.com/go-gl/gl/v4.1-core/gl"
)

const vertexShaderSrc = `#version 410 core
layout(location = 0) in vec2 aPos;
layout(location = 1) in vec4 aColor;
uniform mat4 proj;
out vec4 vColor;
void main() {
	vColor = aColor;
	gl_Position = proj * vec4(aPos, 0.0, 1.0);
}
` + "\x00"

const fragmentShaderSrc = `#version 410 core
in vec4 vColor;
out vec4 fragColor;
void main() {
	fragColor = vColor;
}
` + "\x00"

func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, opengl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, opengl.FRAGMENT_SHADER)
	if err != nil {
		opengl.DeleteShader(vertexShader)
		return 0, err
	}

	program := opengl.CreateProgram()
	opengl.AttachShader(program, vertexShader)
	opengl.AttachShader(program, fragmentShader)
	opengl.LinkProgram(program)

	opengl.DeleteShader(vertexShader)
	opengl.DeleteShader(fragmentShader)

	var status int32
	opengl.GetProgramiv(program, opengl.LINK_STATUS, &status)
	if status == opengl.FALSE {
		var logLength int32
		opengl.GetProgramiv(program, opengl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		opengl.GetProgramInfoLog(program, logLength, nil, opengl.Str(log))
		opengl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := opengl.CreateShader(shaderType)
	csources, free := opengl.Strs(source)
	opengl.ShaderSource(shader, 1, csources, nil)
	free()
	opengl.CompileShader(shader)

	var status int32
	opengl.GetShaderiv(shader, opengl.COMPILE_STATUS, &status)
	if status == opengl.FALSE {
		var logLength int32
		opengl.GetShaderiv(shader, opengl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		opengl.GetShaderInfoLog(shader, logLength, nil, opengl.Str(log))
		opengl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %v", log)
	}

	return shader, nil
}
