// Package glsl holds the shader programs of the GL backend. It has no cgo
// dependency so the sources can be inspected and tested anywhere.
package glsl

// FullscreenVert draws one triangle covering the viewport (no vertex
// buffer, positions come from gl_VertexID).
const FullscreenVert = `
#version 410 core
void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
}
` + "\x00"
