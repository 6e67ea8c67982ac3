package glsl

// OcclusionUniforms lists the uniforms OcclusionFrag declares.
var OcclusionUniforms = []string{
	"uDepth",
	"uResolution",
	"uAspect",
	"uFarPlane",
	"uInvRadiusSquared",
	"uProjectionScaleRadius",
	"uPeak2",
	"uIntensity",
	"uPower",
	"uBias",
	"uMinHorizonAngleSineSquared",
	"uSampleCount",
	"uInvSampleCount",
	"uAngleIncCosSin",
	"uMaxLevel",
	"uDerivativeNormals",
	"uContactShadows",
	"uLightDirection",
	"uShadowDistance",
	"uConeAngleTangent",
	"uContactDistanceMaxInv",
	"uContactIntensity",
	"uDepthBias",
	"uSlopeScaledDepthBias",
	"uContactSampleCount",
	"uRayCount",
	"uInvRayCount",
}

// OcclusionFrag is the first pass: scalable ambient obscurance plus the
// optional contact shadow cone trace. The output is visibility, RGBM
// encoded. uDepth stores positive linear distance.
const OcclusionFrag = `
#version 410 core
out vec4 outColor;

uniform sampler2D uDepth;
uniform vec4  uResolution; // width, height, 1/width, 1/height
uniform float uAspect;
uniform float uFarPlane;

uniform float uInvRadiusSquared;
uniform float uProjectionScaleRadius;
uniform float uPeak2;
uniform float uIntensity;
uniform float uPower;
uniform float uBias;
uniform float uMinHorizonAngleSineSquared;
uniform int   uSampleCount;
uniform float uInvSampleCount;
uniform vec2  uAngleIncCosSin;
uniform int   uMaxLevel;
uniform bool  uDerivativeNormals;

uniform bool  uContactShadows;
uniform vec3  uLightDirection;
uniform float uShadowDistance;
uniform float uConeAngleTangent;
uniform float uContactDistanceMaxInv;
uniform float uContactIntensity;
uniform float uDepthBias;
uniform float uSlopeScaledDepthBias;
uniform int   uContactSampleCount;
uniform int   uRayCount;
uniform float uInvRayCount;

const int   kMaxSampleCount = 64;
const int   kMaxContactSampleCount = 32;
const int   kMaxContactRayCount = 16;
const float kLog2LodRate = 3.0;
const float kTwoPi = 6.28318530718;

float saturate(float x) { return clamp(x, 0.0, 1.0); }

bool usable(float d) {
    return d > 0.0 && d <= uFarPlane && !isnan(d) && !isinf(d);
}

float sceneDepth(vec2 uv, int level) {
    float d = textureLod(uDepth, uv, float(level)).r;
    return usable(d) ? d : uFarPlane;
}

vec3 viewPosition(vec2 uv, float z) {
    return vec3((0.5 - uv) * vec2(uAspect, 1.0) * z, z);
}

vec2 screenFromView(vec3 p) {
    return vec2(0.5 - p.x / (uAspect * p.z), 0.5 - p.y / p.z);
}

vec3 normalFromDepth(vec2 uv, vec3 p) {
    vec2 uvx = uv + vec2(uResolution.z, 0.0);
    vec2 uvy = uv + vec2(0.0, uResolution.w);
    vec3 px = viewPosition(uvx, -sceneDepth(uvx, 0));
    vec3 py = viewPosition(uvy, -sceneDepth(uvy, 0));
    return cross(px - p, py - p);
}

float random(vec2 fc) {
    return fract(52.9829189 * fract(dot(fc, vec2(0.06711056, 0.00583715))));
}

int mipLevel(float ssRadius) {
    if (!(ssRadius > 1.0)) {
        return 0;
    }
    return clamp(int(floor(log2(ssRadius)) - kLog2LodRate), 0, uMaxLevel);
}

// Center of the texel a nearest fetch of level reads at uv.
vec2 texelCenter(vec2 uv, int level) {
    vec2 size = vec2(textureSize(uDepth, level));
    return (clamp(floor(uv * size), vec2(0.0), size - 1.0) + 0.5) / size;
}

float ambientObscurance(vec2 uv, vec3 origin, vec3 normal, float noise) {
    if (!(uIntensity > 0.0)) {
        return 0.0;
    }
    float ssDiskRadius = -(uProjectionScaleRadius / origin.z);
    mat2 rotation = mat2(uAngleIncCosSin.x, uAngleIncCosSin.y, -uAngleIncCosSin.y, uAngleIncCosSin.x);
    float angle = kTwoPi * 2.4 * noise;
    vec2 tap = vec2(cos(angle), sin(angle));

    float occlusion = 0.0;
    for (int i = 0; i < kMaxSampleCount; i++) {
        if (i >= uSampleCount) {
            break;
        }
        float r = (float(i) + noise + 0.5) * uInvSampleCount;
        float ssRadius = max(1.0, r * r * ssDiskRadius);
        int level = mipLevel(ssRadius);
        vec2 uvSample = texelCenter(uv + tap * ssRadius * uResolution.zw, level);

        vec3 p = viewPosition(uvSample, -sceneDepth(uvSample, level));
        vec3 v = p - origin;
        float vv = dot(v, v);
        float vn = dot(v, normal);

        float w = max(0.0, 1.0 - vv * uInvRadiusSquared);
        w = w * w;
        if (vn * vn >= vv * uMinHorizonAngleSineSquared) {
            occlusion += w * max(0.0, vn + origin.z * uBias) / (vv + uPeak2);
        }
        tap = rotation * tap;
    }
    return sqrt(occlusion * uIntensity);
}

float coneTrace(vec2 uv, vec3 origin, vec3 normal, vec2 jitter) {
    float NoL = dot(normal, uLightDirection);
    if (NoL < 0.0) {
        return 0.0;
    }

    vec3 vsEnd = origin + uLightDirection * uShadowDistance;
    float wStart = -origin.z;
    float wEnd = -vsEnd.z;
    if (!(wEnd > 0.0) || !(wStart > 0.0)) {
        return 0.0;
    }

    vec2 ssStart = uv * uResolution.xy;
    vec2 ssEnd = screenFromView(vsEnd) * uResolution.xy;
    vec2 ssConeVector = ssEnd - ssStart;
    float ssConeLength = length(ssConeVector);
    if (!(ssConeLength > 0.0)) {
        return 0.0;
    }
    vec2 perp = normalize(vec2(ssConeVector.y, -ssConeVector.x));

    float vsEndRadius = uConeAngleTangent * uShadowDistance;
    float bias = saturate(1.0 - NoL) * uSlopeScaledDepthBias + uDepthBias;
    float dt = 1.0 / float(uContactSampleCount);
    float t = dt * jitter.y;

    float occlusion = 0.0;
    for (int i = 0; i < kMaxContactSampleCount; i++, t += dt) {
        if (i >= uContactSampleCount) {
            break;
        }
        float ssSliceRadius = jitter.x * (uConeAngleTangent * ssConeLength * t);
        vec2 ssSample = ssStart + ssConeVector * t + perp * ssSliceRadius;
        float sampleDepth = sceneDepth(ssSample * uResolution.zw, mipLevel(abs(ssSliceRadius)));

        float vsSliceRadius = vsEndRadius * t;
        float axisDepth = 1.0 / mix(1.0 / wStart, 1.0 / wEnd, t);
        float jittered = vsSliceRadius * jitter.x;
        float halfRange = sqrt(max(0.0, vsSliceRadius * vsSliceRadius - jittered * jittered));
        if (!(halfRange > 0.0)) {
            continue;
        }

        float diff = axisDepth + halfRange - sampleDepth;
        float overlap = saturate((diff - bias) / (2.0 * halfRange));
        float attenuation = saturate(1.0 - diff * uContactDistanceMaxInv);
        occlusion = max(occlusion, overlap * attenuation);
        if (occlusion >= 1.0) {
            break;
        }
    }
    return occlusion;
}

float dominantLightShadowing(vec2 fc, vec2 uv, vec3 origin, vec3 normal) {
    float occlusion = 0.0;
    for (int i = 1; i <= kMaxContactRayCount; i++) {
        if (i > uRayCount) {
            break;
        }
        vec2 seed = fc * float(i);
        vec2 jitter = vec2(random(seed) * 2.0 - 1.0, random(seed * vec2(3.0, 11.0)));
        occlusion += coneTrace(uv, origin, normal, jitter);
    }
    return occlusion * uContactIntensity * uInvRayCount;
}

vec4 encodeRGBM(vec3 c) {
    vec3 rgb = sqrt(max(c, 0.0)) * (1.0 / 8.0);
    float a = saturate(max(max(rgb.r, rgb.g), max(rgb.b, 1.0 / 255.0)));
    a = ceil(a * 255.0) / 255.0;
    return vec4(rgb / a, a);
}

void main() {
    vec2 fc = gl_FragCoord.xy;
    vec2 uv = fc * uResolution.zw;

    float d = textureLod(uDepth, uv, 0.0).r;

    // Derivatives need the whole quad, so take them before any pixel leaves.
    vec3 origin = viewPosition(uv, -d);
    vec3 dpdx = dFdx(origin);
    vec3 dpdy = dFdy(origin);

    if (!usable(d) || d >= uFarPlane) {
        outColor = encodeRGBM(vec3(1.0));
        return;
    }

    vec3 normal = uDerivativeNormals ? cross(dpdx, dpdy) : normalFromDepth(uv, origin);
    normal = dot(normal, normal) > 0.0 ? normalize(normal) : vec3(0.0, 0.0, 1.0);

    float occlusion = ambientObscurance(uv, origin, normal, random(fc));
    if (uContactShadows) {
        occlusion = max(occlusion, dominantLightShadowing(fc, uv, origin, normal));
    }
    if (isnan(occlusion) || isinf(occlusion)) {
        occlusion = 0.0;
    }

    float visibility = saturate(pow(saturate(1.0 - occlusion), uPower));
    outColor = encodeRGBM(vec3(visibility));
}
` + "\x00"
