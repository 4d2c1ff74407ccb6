package recommend

import "github.com/climavista/climavista/internal/weather"

// Rules read snapshot fields through nil-guards: a nil field means the value
// was unavailable for the selected period and every rule depending on it is
// skipped, while rules on the remaining fields still fire.

func clothingRules(s weather.Snapshot) []Recommendation {
	recs := []Recommendation{}

	if s.Temperature != nil {
		switch temp := *s.Temperature; {
		case temp <= 15:
			recs = append(recs,
				Recommendation{Text: "🧥 Abrigo o chaqueta gruesa", Action: "Recomendado", Priority: PriorityHigh},
				Recommendation{Text: "🧣 Accesorios de invierno (bufanda, guantes)", Action: "Considerar", Priority: PriorityMedium},
			)
		case temp <= 20:
			recs = append(recs,
				Recommendation{Text: "🧥 Chaqueta ligera o suéter", Action: "Recomendado", Priority: PriorityMedium},
			)
		case temp >= 30:
			recs = append(recs,
				Recommendation{Text: "👕 Ropa ligera y transpirable", Action: "Recomendado", Priority: PriorityHigh},
				Recommendation{Text: "🧴 Protector solar SPF 30+", Action: "Esencial", Priority: PriorityHigh},
			)
		}
	}

	if s.WeatherCode != nil {
		if weather.RainCodes.Contains(*s.WeatherCode) {
			recs = append(recs,
				Recommendation{Text: "☔ Impermeable o paraguas", Action: "Esencial", Priority: PriorityHigh},
				Recommendation{Text: "👟 Calzado resistente al agua", Action: "Recomendado", Priority: PriorityMedium},
			)
		}
		if weather.SnowCodes.Contains(*s.WeatherCode) {
			recs = append(recs,
				Recommendation{Text: "❄️ Ropa de invierno completa", Action: "Esencial", Priority: PriorityHigh},
				Recommendation{Text: "🥾 Botas impermeables", Action: "Recomendado", Priority: PriorityMedium},
			)
		}
	}

	if s.WindSpeed != nil && *s.WindSpeed > 20 {
		recs = append(recs,
			Recommendation{Text: "🧥 Chaqueta cortavientos", Action: "Recomendado", Priority: PriorityMedium},
		)
	}

	return recs
}

func equipmentRules(s weather.Snapshot) []Recommendation {
	recs := []Recommendation{}

	if s.Temperature != nil {
		switch temp := *s.Temperature; {
		case temp <= 10:
			recs = append(recs,
				Recommendation{Text: "🔥 Calentador portátil o termos", Action: "Considerar", Priority: PriorityMedium},
			)
		case temp >= 30:
			recs = append(recs,
				Recommendation{Text: "🧊 Termo con agua fría", Action: "Recomendado", Priority: PriorityHigh},
				Recommendation{Text: "🌬️ Ventilador portátil", Action: "Considerar", Priority: PriorityLow},
			)
		}
	}

	if s.WeatherCode != nil {
		if weather.RainCodes.Contains(*s.WeatherCode) {
			recs = append(recs,
				Recommendation{Text: "📱 Protector para dispositivos electrónicos", Action: "Recomendado", Priority: PriorityMedium},
			)
		}
		if weather.SnowCodes.Contains(*s.WeatherCode) {
			recs = append(recs,
				Recommendation{Text: "🧹 Escobilla para nieve", Action: "Considerar", Priority: PriorityLow},
			)
		}
	}

	if s.Humidity != nil {
		switch humidity := *s.Humidity; {
		case humidity > 80:
			recs = append(recs,
				Recommendation{Text: "🌬️ Deshumidificador portátil", Action: "Considerar", Priority: PriorityLow},
			)
		case humidity < 30:
			recs = append(recs,
				Recommendation{Text: "💧 Humidificador portátil", Action: "Considerar", Priority: PriorityLow},
			)
		}
	}

	return recs
}

func healthRules(s weather.Snapshot) []Recommendation {
	recs := []Recommendation{}

	if s.Temperature != nil {
		switch temp := *s.Temperature; {
		case temp <= 5:
			recs = append(recs,
				Recommendation{Text: "🧴 Crema hidratante para piel seca", Action: "Recomendado", Priority: PriorityHigh},
				Recommendation{Text: "💊 Vitamina C para el sistema inmunológico", Action: "Considerar", Priority: PriorityMedium},
			)
		case temp >= 30:
			recs = append(recs,
				Recommendation{Text: "🧴 Protector solar SPF 50+", Action: "Esencial", Priority: PriorityHigh},
				Recommendation{Text: "💧 Hidratación extra (2+ litros de agua)", Action: "Esencial", Priority: PriorityHigh},
				Recommendation{Text: "🧴 Crema hidratante post-sol", Action: "Recomendado", Priority: PriorityMedium},
			)
		}
	}

	if s.WeatherCode != nil && weather.RainCodes.Contains(*s.WeatherCode) {
		recs = append(recs,
			Recommendation{Text: "🧴 Crema antimicótica para pies", Action: "Considerar", Priority: PriorityLow},
		)
	}

	if s.Humidity != nil {
		switch humidity := *s.Humidity; {
		case humidity > 80:
			recs = append(recs,
				Recommendation{Text: "🧴 Crema para prevenir irritaciones", Action: "Considerar", Priority: PriorityLow},
			)
		case humidity < 30:
			recs = append(recs,
				Recommendation{Text: "🧴 Gotas para ojos secos", Action: "Considerar", Priority: PriorityMedium},
				Recommendation{Text: "🧴 Bálsamo labial hidratante", Action: "Recomendado", Priority: PriorityMedium},
			)
		}
	}

	if s.WindSpeed != nil && *s.WindSpeed > 15 {
		recs = append(recs,
			Recommendation{Text: "🧴 Crema para labios con protección", Action: "Recomendado", Priority: PriorityMedium},
		)
	}

	return recs
}

func sunscreenRules(s weather.Snapshot) []Recommendation {
	recs := []Recommendation{}
	if s.UVIndex == nil {
		return recs
	}

	// UV index scale: 0-2 low, 3-5 moderate, 6-7 high, 8-10 very high,
	// 11+ extreme.
	switch uv := *s.UVIndex; {
	case uv >= 11:
		recs = append(recs,
			Recommendation{Text: "🧴 Protector solar SPF 50+ cada 2 horas", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "🏠 Evitar actividades al aire libre", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "👕 Ropa con protección UV certificada", Action: "Esencial", Priority: PriorityHigh},
			Recommendation{Text: "🕶️ Gafas de sol con protección UV completa", Action: "Esencial", Priority: PriorityHigh},
		)
	case uv >= 8:
		recs = append(recs,
			Recommendation{Text: "🧴 Protector solar SPF 50+ obligatorio", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "👒 Evitar exposición directa 10am-4pm", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "🕶️ Gafas de sol con protección UV completa", Action: "Esencial", Priority: PriorityHigh},
			Recommendation{Text: "👕 Ropa de manga larga y pantalones", Action: "Recomendado", Priority: PriorityMedium},
		)
	case uv >= 6:
		recs = append(recs,
			Recommendation{Text: "🧴 Protector solar SPF 30+ esencial", Action: "Esencial", Priority: PriorityHigh},
			Recommendation{Text: "👒 Gorra, sombrero o sombra entre 10am-4pm", Action: "Recomendado", Priority: PriorityHigh},
			Recommendation{Text: "🕶️ Gafas de sol con protección UV", Action: "Recomendado", Priority: PriorityMedium},
		)
	case uv >= 3:
		recs = append(recs,
			Recommendation{Text: "🧴 Protector solar SPF 15-30 recomendado", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "👒 Gorra o sombrero para protección adicional", Action: "Considerar", Priority: PriorityLow},
		)
	}

	return recs
}

// HeatIndex approximates perceived heat from temperature, humidity, and wind.
func HeatIndex(temperature, humidity, windspeed float64) float64 {
	return temperature + humidity*0.1 - windspeed*0.1
}

func heatStressRules(s weather.Snapshot) []Recommendation {
	recs := []Recommendation{}
	if s.Temperature == nil {
		return recs
	}

	temp := *s.Temperature
	heatIndex := temp
	if s.Humidity != nil && s.WindSpeed != nil {
		heatIndex = HeatIndex(temp, *s.Humidity, *s.WindSpeed)
	}

	switch {
	case temp >= 35 || heatIndex >= 40:
		recs = append(recs,
			Recommendation{Text: "🚨 Evitar actividades al aire libre entre 10am-4pm", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "🏠 Buscar espacios con aire acondicionado (21-24°C)", Action: "Esencial", Priority: PriorityHigh},
			Recommendation{Text: "💧 Hidratación constante (agua cada 15-20 min)", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "🌡️ Monitorear temperatura corporal - síntomas de golpe de calor", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "👥 Verificar estado de familiares vulnerables cada 2 horas", Action: "Esencial", Priority: PriorityHigh},
			Recommendation{Text: "🏥 Contactar servicios médicos si hay confusión o pérdida de conciencia", Action: "Crítico", Priority: PriorityHigh},
		)
	case temp >= 30 || heatIndex >= 35:
		recs = append(recs,
			Recommendation{Text: "⏰ Limitar tiempo al aire libre en horas pico", Action: "Recomendado", Priority: PriorityHigh},
			Recommendation{Text: "🌡️ Monitorear síntomas de agotamiento por calor", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "💧 Aumentar ingesta de agua (2-3 litros/día)", Action: "Esencial", Priority: PriorityHigh},
		)
	}

	if s.Humidity != nil && *s.Humidity > 70 && temp > 25 {
		recs = append(recs,
			Recommendation{Text: "🌬️ Usar ventiladores para circulación de aire", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "👕 Ropa de algodón ligero y transpirable", Action: "Recomendado", Priority: PriorityMedium},
		)
	}

	return recs
}

func airQualityRules(s weather.Snapshot) []Recommendation {
	recs := []Recommendation{}

	// Stagnant air traps pollutants near the ground.
	if s.WindSpeed != nil && *s.WindSpeed < 5 {
		recs = append(recs,
			Recommendation{Text: "🚫 Evitar ejercicio intenso al aire libre - viento bajo", Action: "Recomendado", Priority: PriorityHigh},
			Recommendation{Text: "🏠 Mantener ventanas cerradas en zonas urbanas", Action: "Esencial", Priority: PriorityHigh},
			Recommendation{Text: "🌬️ Usar purificadores de aire con filtros HEPA", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "👥 Evitar actividades grupales al aire libre", Action: "Considerar", Priority: PriorityMedium},
		)
	}

	if s.WindSpeed != nil && *s.WindSpeed < 2 {
		recs = append(recs,
			Recommendation{Text: "🚨 Condiciones críticas - evitar salir de casa", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "🏥 Personas con asma/EPOC deben usar medicación preventiva", Action: "Crítico", Priority: PriorityHigh},
		)
	}

	if s.Pressure != nil && *s.Pressure > 1020 {
		recs = append(recs,
			Recommendation{Text: "🌿 Buscar espacios verdes alejados del tráfico", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "⏰ Evitar horas pico de tráfico (7-9am, 5-7pm)", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "🚗 Evitar caminar cerca de carreteras principales", Action: "Recomendado", Priority: PriorityMedium},
		)
	}

	if s.Pressure != nil && *s.Pressure > 1030 {
		recs = append(recs,
			Recommendation{Text: "⚠️ Sistema de alta presión - máxima contaminación", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "🏠 Permanecer en interiores con ventilación controlada", Action: "Esencial", Priority: PriorityHigh},
		)
	}

	if s.Humidity != nil && *s.Humidity > 80 {
		recs = append(recs,
			Recommendation{Text: "🌬️ Usar purificadores de aire en interiores", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "🏠 Controlar humedad interior (30-60% ideal)", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "🧽 Limpiar superficies para reducir alérgenos", Action: "Considerar", Priority: PriorityLow},
		)
	}

	// Temperature inversion: cold, still air under high pressure.
	if s.Temperature != nil && s.WindSpeed != nil && s.Pressure != nil &&
		*s.Temperature < 10 && *s.WindSpeed < 3 && *s.Pressure > 1015 {
		recs = append(recs,
			Recommendation{Text: "🌡️ Inversión térmica - contaminación atrapada", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "🚫 Evitar actividades al aire libre hasta mediodía", Action: "Esencial", Priority: PriorityHigh},
		)
	}

	lowWind := s.WindSpeed != nil && *s.WindSpeed < 5
	highPressure := s.Pressure != nil && *s.Pressure > 1020
	if lowWind || highPressure {
		recs = append(recs,
			Recommendation{Text: "👶 Niños y embarazadas evitar salir al exterior", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "👴 Adultos mayores usar mascarillas N95", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "🏥 Personas con enfermedades respiratorias - máxima precaución", Action: "Crítico", Priority: PriorityHigh},
		)
	}

	return recs
}

func workplaceSafetyRules(s weather.Snapshot) []Recommendation {
	recs := []Recommendation{}

	if s.Temperature != nil && *s.Temperature >= 30 {
		recs = append(recs,
			Recommendation{Text: "👷 Implementar pausas cada 15-20 minutos", Action: "Obligatorio", Priority: PriorityHigh},
			Recommendation{Text: "🏥 Designar área de descanso con sombra", Action: "Esencial", Priority: PriorityHigh},
			Recommendation{Text: "💧 Proporcionar agua fresca constantemente", Action: "Obligatorio", Priority: PriorityHigh},
		)
	}

	if s.UVIndex != nil && *s.UVIndex >= 6 {
		recs = append(recs,
			Recommendation{Text: "👷 Proporcionar equipos de protección UV", Action: "Obligatorio", Priority: PriorityHigh},
			Recommendation{Text: "⏰ Rotar trabajos en horarios de menor UV", Action: "Recomendado", Priority: PriorityMedium},
		)
	}

	if s.WindSpeed != nil && *s.WindSpeed > 15 {
		recs = append(recs,
			Recommendation{Text: "⚠️ Suspender trabajos en altura", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "👷 Usar equipos de protección adicional", Action: "Obligatorio", Priority: PriorityHigh},
		)
	}

	return recs
}

func vulnerablePopulationRules(s weather.Snapshot) []Recommendation {
	recs := []Recommendation{}
	if s.Temperature == nil {
		return recs
	}
	temp := *s.Temperature

	if temp >= 30 {
		recs = append(recs,
			Recommendation{Text: "👶 Supervisar constantemente a niños pequeños", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "🍼 Aumentar frecuencia de alimentación en bebés", Action: "Esencial", Priority: PriorityHigh},
		)
	}

	if temp <= 10 || temp >= 30 {
		recs = append(recs,
			Recommendation{Text: "👴 Verificar estado de adultos mayores regularmente", Action: "Recomendado", Priority: PriorityHigh},
			Recommendation{Text: "🏠 Mantener temperatura ambiente estable", Action: "Recomendado", Priority: PriorityMedium},
		)
	}

	if temp >= 30 {
		recs = append(recs,
			Recommendation{Text: "🤰 Evitar sobrecalentamiento - riesgo fetal", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "💧 Hidratación extra para embarazadas", Action: "Esencial", Priority: PriorityHigh},
		)
	}

	return recs
}

func waterSafetyRules(s weather.Snapshot) []Recommendation {
	recs := []Recommendation{}

	if s.Temperature != nil && *s.Temperature >= 30 {
		recs = append(recs,
			Recommendation{Text: "💧 Beber agua antes de sentir sed (WHO recomienda)", Action: "Esencial", Priority: PriorityHigh},
			Recommendation{Text: "🥤 Evitar alcohol y cafeína - aumentan deshidratación", Action: "Recomendado", Priority: PriorityHigh},
			Recommendation{Text: "🧂 Considerar bebidas con electrolitos si sudas mucho", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "🍉 Consumir frutas con alto contenido de agua", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "⏰ Hidratación programada cada 15-20 minutos", Action: "Esencial", Priority: PriorityHigh},
		)
	}

	if s.Humidity != nil && *s.Humidity < 30 {
		recs = append(recs,
			Recommendation{Text: "💧 Hidratación extra por aire seco (WHO)", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "👄 Usar bálsamo labial para prevenir grietas", Action: "Recomendado", Priority: PriorityMedium},
			Recommendation{Text: "👁️ Gotas para ojos secos si es necesario", Action: "Considerar", Priority: PriorityLow},
		)
	}

	if s.Temperature != nil && *s.Temperature >= 35 {
		recs = append(recs,
			Recommendation{Text: "🚨 Hidratación médica supervisada si hay síntomas graves", Action: "Crítico", Priority: PriorityHigh},
			Recommendation{Text: "🏥 Buscar atención médica si hay signos de deshidratación severa", Action: "Crítico", Priority: PriorityHigh},
		)
	}

	return recs
}
