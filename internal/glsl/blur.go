package glsl

// BlurUniforms lists the uniforms BlurFrag declares.
var BlurUniforms = []string{
	"uOcclusion",
	"uColor",
	"uSpatialSigma",
	"uRangeSigma",
}

// BlurFrag is the second pass: a 15x15 bilateral filter over the RGBM
// occlusion, multiplied into the scene color. Texels with a zero multiplier
// are holes and are skipped.
const BlurFrag = `
#version 410 core
out vec4 outColor;

uniform sampler2D uOcclusion;
uniform sampler2D uColor;
uniform float uSpatialSigma;
uniform float uRangeSigma;

const int kSize = 15;
const int kHalf = 7;

float normpdf(float x, float sigma) {
    return 0.39894 * exp(-0.5 * x * x / (sigma * sigma)) / sigma;
}

float normpdf3(vec3 v, float sigma) {
    return 0.39894 * exp(-0.5 * dot(v, v) / (sigma * sigma)) / sigma;
}

vec4 encodeRGBM(vec3 c) {
    vec3 rgb = sqrt(max(c, 0.0)) * (1.0 / 8.0);
    float a = clamp(max(max(rgb.r, rgb.g), max(rgb.b, 1.0 / 255.0)), 0.0, 1.0);
    a = ceil(a * 255.0) / 255.0;
    return vec4(rgb / a, a);
}

vec3 decodeRGBM(vec4 c) {
    vec3 rgb = 8.0 * c.a * c.rgb;
    return rgb * rgb;
}

void main() {
    ivec2 size = textureSize(uOcclusion, 0);
    ivec2 fc = ivec2(gl_FragCoord.xy);

    float kernel[kSize];
    for (int j = 0; j <= kHalf; j++) {
        kernel[kHalf + j] = kernel[kHalf - j] = normpdf(float(j), uSpatialSigma);
    }

    vec4 center = texelFetch(uOcclusion, fc, 0);
    vec3 c = decodeRGBM(center);
    float bZ = 1.0 / normpdf(0.0, uRangeSigma);

    vec3 sum = vec3(0.0);
    float z = 0.0;
    for (int i = -kHalf; i <= kHalf; i++) {
        for (int j = -kHalf; j <= kHalf; j++) {
            vec4 texel = texelFetch(uOcclusion, clamp(fc + ivec2(i, j), ivec2(0), size - 1), 0);
            if (!(texel.a > 0.0)) {
                continue;
            }
            vec3 v = decodeRGBM(texel);
            float factor = kernel[kHalf + j] * kernel[kHalf + i] * normpdf3(v - c, uRangeSigma) * bZ;
            z += factor;
            sum += factor * v;
        }
    }

    vec3 occlusion;
    if (z > 0.0) {
        occlusion = sum / z;
    } else {
        occlusion = center.a > 0.0 ? c : vec3(1.0);
    }

    vec3 color = texelFetch(uColor, fc, 0).rgb;
    outColor = vec4(color * decodeRGBM(encodeRGBM(occlusion)), 1.0);
}
` + "\x00"
