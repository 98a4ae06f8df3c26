package rendering

import (
	"math"

	"cakegallery/config"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const lightingVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;

out vec3 fragPosition;
out vec2 fragTexCoord;
out vec4 fragColor;
out vec3 fragNormal;

void main() {
    fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

// Lambert shading with one ambient, one directional, one spot and one point
// light. Colors are lit in linear space and written back as sRGB.
const lightingFragmentShader = `
#version 330

in vec3 fragPosition;
in vec2 fragTexCoord;
in vec4 fragColor;
in vec3 fragNormal;

uniform sampler2D texture0;
uniform vec4 colDiffuse;

uniform vec3 ambientColor;
uniform vec3 dirDirection;
uniform vec3 dirColor;
uniform vec3 spotPosition;
uniform vec3 spotDirection;
uniform float spotCosCutoff;
uniform vec3 spotColor;
uniform vec3 pointPosition;
uniform vec3 pointColor;
uniform float decay;

out vec4 finalColor;

const float RECIPROCAL_PI = 0.3183098861837907;

float attenuation(float dist) {
    return 1.0 / max(pow(dist, decay), 0.01);
}

void main() {
    vec4 albedo = texture(texture0, fragTexCoord) * colDiffuse * fragColor;
    vec3 base = pow(albedo.rgb, vec3(2.2));
    vec3 n = normalize(fragNormal);

    vec3 irradiance = ambientColor;
    irradiance += dirColor * max(dot(n, dirDirection), 0.0);

    vec3 toSpot = spotPosition - fragPosition;
    float spotDist = length(toSpot);
    vec3 spotL = toSpot / spotDist;
    if (dot(-spotL, spotDirection) > spotCosCutoff) {
        irradiance += spotColor * max(dot(n, spotL), 0.0) * attenuation(spotDist);
    }

    vec3 toPoint = pointPosition - fragPosition;
    float pointDist = length(toPoint);
    irradiance += pointColor * max(dot(n, toPoint / pointDist), 0.0) * attenuation(pointDist);

    vec3 color = base * irradiance * RECIPROCAL_PI;
    finalColor = vec4(pow(color, vec3(1.0 / 2.2)), albedo.a);
}
`

// Lighting is the fixed light rig every viewport shares
type Lighting struct {
	shader rl.Shader
}

// NewLighting compiles the lighting shader and uploads the light rig
func NewLighting(lights config.LightSettings) *Lighting {
	shader := rl.LoadShaderFromMemory(lightingVertexShader, lightingFragmentShader)
	shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocation(shader, "matModel"))
	shader.UpdateLocation(rl.ShaderLocMatrixNormal, rl.GetShaderLocation(shader, "matNormal"))

	l := &Lighting{shader: shader}
	l.upload(lights)
	return l
}

func (l *Lighting) upload(lights config.LightSettings) {
	l.setVec3("ambientColor", radiance(lights.Ambient))

	l.setVec3("dirDirection", vec3(lights.Directional.Position).Normalize())
	l.setVec3("dirColor", radiance(lights.Directional))

	spotPos := vec3(lights.Spot.Position)
	l.setVec3("spotPosition", spotPos)
	l.setVec3("spotDirection", spotPos.Mul(-1).Normalize())
	l.setFloat("spotCosCutoff", float32(math.Cos(float64(lights.Spot.Angle))))
	l.setVec3("spotColor", radiance(lights.Spot))

	l.setVec3("pointPosition", vec3(lights.Point.Position))
	l.setVec3("pointColor", radiance(lights.Point))

	l.setFloat("decay", lights.Decay)
}

// Apply makes every material of model use the lighting shader
func (l *Lighting) Apply(model rl.Model) {
	materials := model.GetMaterials()
	for i := range materials {
		materials[i].Shader = l.shader
	}
}

// Unload releases the shader
func (l *Lighting) Unload() {
	rl.UnloadShader(l.shader)
}

func (l *Lighting) setVec3(name string, v mgl32.Vec3) {
	loc := rl.GetShaderLocation(l.shader, name)
	rl.SetShaderValue(l.shader, loc, []float32{v.X(), v.Y(), v.Z()}, rl.ShaderUniformVec3)
}

func (l *Lighting) setFloat(name string, v float32) {
	loc := rl.GetShaderLocation(l.shader, name)
	rl.SetShaderValue(l.shader, loc, []float32{v}, rl.ShaderUniformFloat)
}

// radiance is the light color in linear space scaled by intensity
func radiance(light config.Light) mgl32.Vec3 {
	c := mgl32.Vec3{
		srgbToLinear(light.Color[0]),
		srgbToLinear(light.Color[1]),
		srgbToLinear(light.Color[2]),
	}
	return c.Mul(light.Intensity)
}

func srgbToLinear(c uint8) float32 {
	return float32(math.Pow(float64(c)/255, 2.2))
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}
