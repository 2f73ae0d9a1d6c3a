package catalog

import "github.com/ayusman/motionlab/internal/movement"

var exercises = []Exercise{
	{
		Name:             "Single Leg Stand",
		Description:      "Stand on one foot for the target duration",
		Instructions:     "Lift one foot off the ground and maintain balance. Use your arms for stability.",
		Duration:         15,
		Difficulty:       Easy,
		Tips:             []string{"Focus on a fixed point ahead", "Keep your core engaged", "Breathe normally"},
		PoseRequirements: map[string]any{"single_leg": true, "balance_threshold": 0.15},
	},
	{
		Name:             "Heel-to-Toe Walk",
		Description:      "Walk in a straight line placing heel directly in front of toe",
		Instructions:     "Walk forward in a straight line, placing your heel directly in front of your toe with each step.",
		Duration:         20,
		Difficulty:       Medium,
		Tips:             []string{"Look ahead, not down", "Take your time", "Keep arms out for balance"},
		PoseRequirements: map[string]any{"walking_pattern": true, "foot_alignment": true},
	},
	{
		Name:             "Balance Beam Walk",
		Description:      "Walk along an imaginary line maintaining balance",
		Instructions:     "Imagine a straight line on the floor and walk along it without stepping off.",
		Duration:         25,
		Difficulty:       Medium,
		Tips:             []string{"Start slowly", "Use peripheral vision", "Practice daily for improvement"},
		PoseRequirements: map[string]any{"straight_line": true, "balance_threshold": 0.2},
	},
	{
		Name:             "Eyes Closed Balance",
		Description:      "Balance on one foot with eyes closed",
		Instructions:     "Close your eyes and balance on one foot. This challenges your proprioception.",
		Duration:         12,
		Difficulty:       Hard,
		Tips:             []string{"Start with eyes open", "Have someone nearby for safety", "Focus on body awareness"},
		PoseRequirements: map[string]any{"single_leg": true, "balance_threshold": 0.1, "eyes_closed": true},
	},
	{
		Name:             "Dynamic Balance",
		Description:      "Balance while moving your arms",
		Instructions:     "Stand on one foot while moving your arms in different directions.",
		Duration:         18,
		Difficulty:       Hard,
		Tips:             []string{"Start with small movements", "Gradually increase range", "Maintain core stability"},
		PoseRequirements: map[string]any{"single_leg": true, "arm_movement": true, "balance_threshold": 0.12},
	},
	{
		Name:             "Tandem Stance",
		Description:      "Stand with one foot directly in front of the other, heel to toe.",
		Instructions:     "Place one foot directly in front of the other, heel touching toe, and hold your balance.",
		Duration:         15,
		Difficulty:       Medium,
		Tips:             []string{"Keep arms out for balance", "Focus on a point ahead", "Switch feet after each round"},
		PoseRequirements: map[string]any{"tandem_stance": true, "balance_threshold": 0.18},
	},
	{
		Name:             "Sideways Walk",
		Description:      "Walk sideways in a straight line maintaining balance.",
		Instructions:     "Take slow, controlled steps to the side, keeping your body upright.",
		Duration:         20,
		Difficulty:       Easy,
		Tips:             []string{"Move slowly", "Keep feet close to the ground", "Use arms for balance"},
		PoseRequirements: map[string]any{"lateral_movement": true, "balance_threshold": 0.25},
	},
	{
		Name:             "Balance with Object",
		Description:      "Balance on one foot while holding an object overhead.",
		Instructions:     "Stand on one foot and hold a lightweight object (like a book) above your head.",
		Duration:         12,
		Difficulty:       Hard,
		Tips:             []string{"Keep core tight", "Focus on posture", "Switch feet and hands"},
		PoseRequirements: map[string]any{"single_leg": true, "arms_raised": true, "balance_threshold": 0.1},
	},
	{
		Name:             "March in Place",
		Description:      "March in place, lifting knees high and maintaining balance.",
		Instructions:     "Lift each knee high as you march in place, keeping your balance steady.",
		Duration:         25,
		Difficulty:       Easy,
		Tips:             []string{"March slowly", "Keep back straight", "Use arms for rhythm"},
		PoseRequirements: map[string]any{"marching": true, "knee_lift": true, "balance_threshold": 0.3},
	},
	{
		Name:             "Tree Pose Hold",
		Description:      "Stand on one foot with the other foot placed on inner thigh.",
		Instructions:     "Place one foot on the inner thigh of standing leg, hands together at chest.",
		Duration:         20,
		Difficulty:       Medium,
		Tips:             []string{"Press foot into leg", "Keep hips level", "Focus on breathing"},
		PoseRequirements: map[string]any{"tree_pose": true, "balance_threshold": 0.12},
	},
	{
		Name:             "Clock Reaches",
		Description:      "Stand on one foot and reach arms to different clock positions.",
		Instructions:     "Standing on one foot, reach your arms to 12, 3, 6, and 9 o'clock positions.",
		Duration:         30,
		Difficulty:       Hard,
		Tips:             []string{"Move slowly", "Keep standing leg stable", "Breathe throughout"},
		PoseRequirements: map[string]any{"single_leg": true, "directional_reach": true, "balance_threshold": 0.1},
	},
	{
		Name:             "Weight Shift Balance",
		Description:      "Shift weight from side to side while maintaining balance.",
		Instructions:     "Stand with feet hip-width apart and slowly shift weight from left to right.",
		Duration:         25,
		Difficulty:       Easy,
		Tips:             []string{"Move slowly and controlled", "Keep both feet on ground", "Feel weight transfer"},
		PoseRequirements: map[string]any{"weight_shift": true, "balance_threshold": 0.2},
	},
	{
		Name:             "Stork Stand Progressive",
		Description:      "Progress from two feet to one foot balance with arm variations.",
		Instructions:     "Start two feet, then one foot, then add arm movements while balancing.",
		Duration:         35,
		Difficulty:       Hard,
		Tips:             []string{"Progress gradually", "Use wall if needed", "Build up slowly"},
		PoseRequirements: map[string]any{"progressive_balance": true, "balance_threshold": 0.08},
	},
}

var games = []Game{
	{
		Name: "Rock Paper Scissors", Description: "Play against computer using hand gestures",
		Instructions: "Make rock, paper, or scissors gestures with your hand",
		Type:         "gesture_recognition", Rounds: 5, AgeGroup: "10-18",
		Skills: []string{"hand_coordination", "reaction_time", "decision_making"},
	},
	{
		Name: "Simon Says Gestures", Description: "Follow gesture commands in sequence",
		Instructions: "Copy the gestures shown on screen in the correct order",
		Type:         "sequence_memory", Rounds: 7, AgeGroup: "10-18",
		Skills: []string{"memory", "gesture_control", "attention"},
	},
	{
		Name: "Target Pointing", Description: "Point at targets that appear on screen",
		Instructions: "Point your finger at the colored targets as they appear",
		Type:         "precision_pointing", Rounds: 10, AgeGroup: "10-18",
		Skills: []string{"precision", "hand_eye_coordination", "focus"},
	},
	{
		Name: "Mirror Match", Description: "Mirror the movements shown on screen",
		Instructions: "Copy body movements and hand gestures like looking in a mirror",
		Type:         "body_coordination", Rounds: 6, AgeGroup: "12-18",
		Skills: []string{"body_awareness", "bilateral_coordination", "spatial_processing"},
	},
	{
		Name: "Rhythm Clapping", Description: "Clap along to rhythmic patterns",
		Instructions: "Listen and clap along with the rhythm patterns shown",
		Type:         "rhythm_coordination", Rounds: 8, AgeGroup: "10-16",
		Skills: []string{"timing", "auditory_processing", "motor_planning"},
	},
	{
		Name: "Color Touch", Description: "Touch the correct colored objects quickly",
		Instructions: "Point to or touch the objects of the specified color",
		Type:         "visual_motor", Rounds: 12, AgeGroup: "10-15",
		Skills: []string{"color_recognition", "speed", "visual_tracking"},
	},
	{
		Name: "Pattern Follow", Description: "Follow complex hand movement patterns",
		Instructions: "Copy the hand movement sequences shown step by step",
		Type:         "pattern_coordination", Rounds: 5, AgeGroup: "13-18",
		Skills: []string{"sequential_processing", "fine_motor", "working_memory"},
	},
	{
		Name: "Balance & Point", Description: "Point at targets while balancing on one foot",
		Instructions: "Balance on one foot while pointing at moving targets",
		Type:         "dual_task", Rounds: 8, AgeGroup: "12-18",
		Skills: []string{"balance", "multitasking", "postural_control"},
	},
}

var cameraExercises = []CameraExercise{
	{
		Name:         "Arm Raise",
		Description:  "Raise both arms above your head and hold for 5 seconds.",
		Instructions: "Stand straight, raise both arms overhead, and keep them straight.",
		Duration:     5, Difficulty: Easy, Movement: movement.ArmRaise,
	},
	{
		Name:         "Side Step",
		Description:  "Step to the side and back, repeat for 10 seconds.",
		Instructions: "Step to your right, then left, keeping your body upright.",
		Duration:     10, Difficulty: Easy, Movement: movement.SideStep,
	},
	{
		Name:         "March in Place",
		Description:  "March in place, lifting knees high for 10 seconds.",
		Instructions: "Lift each knee high as you march in place.",
		Duration:     10, Difficulty: Easy, Movement: movement.MarchInPlace,
	},
	{
		Name:         "Squat Hold",
		Description:  "Hold a squat position for 8 seconds.",
		Instructions: "Bend your knees and lower your hips as if sitting, hold.",
		Duration:     8, Difficulty: Medium, Movement: movement.SquatHold,
	},
	{
		Name:         "Torso Twist",
		Description:  "Twist your torso left and right for 10 seconds.",
		Instructions: "Stand straight, twist your upper body left and right.",
		Duration:     10, Difficulty: Medium, Movement: movement.TorsoTwist,
	},
	{
		Name:         "Jumping Jacks",
		Description:  "Do jumping jacks for 10 seconds.",
		Instructions: "Jump with legs apart and arms overhead, then return.",
		Duration:     10, Difficulty: Medium, Movement: movement.JumpingJacks,
	},
	{
		Name:         "Heel Walk",
		Description:  "Walk on your heels for 8 seconds.",
		Instructions: "Lift your toes and walk forward on your heels.",
		Duration:     8, Difficulty: Hard, Movement: movement.HeelWalk,
	},
	{
		Name:         "Balance Reach",
		Description:  "Stand on one foot and reach forward for 6 seconds.",
		Instructions: "Balance on one foot, reach forward with both hands.",
		Duration:     6, Difficulty: Hard, Movement: movement.BalanceReach,
	},
}
